package zvm

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/erraggy/vpgtools/settings"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// VpgInfo is the subset of the VPG listing the reconciliation flow needs.
type VpgInfo struct {
	VpgName       string `json:"VpgName"`
	VpgIdentifier string `json:"VpgIdentifier"`
	VmsCount      int    `json:"VmsCount"`
}

// ListVpgs returns the VPGs known to the appliance, optionally filtered by
// name. An empty filter lists everything.
func (c *Client) ListVpgs(ctx context.Context, nameFilter string) ([]VpgInfo, error) {
	query := url.Values{}
	if nameFilter != "" {
		query.Set("name", nameFilter)
	}
	var vpgs []VpgInfo
	if err := c.do(ctx, http.MethodGet, "/v1/vpgs", query, nil, &vpgs); err != nil {
		return nil, err
	}
	return vpgs, nil
}

// GetVpg returns the VPG with the given name, or a LookupError when the
// appliance does not know it.
func (c *Client) GetVpg(ctx context.Context, name string) (*VpgInfo, error) {
	vpgs, err := c.ListVpgs(ctx, name)
	if err != nil {
		return nil, err
	}
	for i := range vpgs {
		if vpgs[i].VpgName == name {
			return &vpgs[i], nil
		}
	}
	return nil, &vpgerrors.LookupError{VpgName: name, Message: "VPG not known to the appliance"}
}

// ListVMName resolves a VM identifier to its display name. An identifier
// the appliance does not know yields an empty name, not an error: the name
// is display-only and a protected VM may have left the inventory.
func (c *Client) ListVMName(ctx context.Context, vmIdentifier string) (string, error) {
	query := url.Values{"vmIdentifier": {vmIdentifier}}
	var vms []struct {
		VmName string `json:"VmName"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/vms", query, nil, &vms); err != nil {
		return "", err
	}
	if len(vms) == 0 {
		return "", nil
	}
	return vms[0].VmName, nil
}

// ExportVpgSettings asks the appliance to snapshot the settings of the
// given VPGs (all VPGs when empty) and returns the snapshot token used to
// read the result back.
func (c *Client) ExportVpgSettings(ctx context.Context, vpgNames []string) (string, error) {
	body := map[string]any{"VpgNames": vpgNames}
	var result struct {
		TimeStamp string `json:"TimeStamp"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/vpgSettings/exportSettings", nil, body, &result); err != nil {
		return "", err
	}
	if result.TimeStamp == "" {
		return "", &vpgerrors.TransportError{Op: "POST /v1/vpgSettings/exportSettings", Message: "export returned no snapshot token"}
	}
	return result.TimeStamp, nil
}

// ReadExportedVpgSettings fetches the settings trees of a prior export
// snapshot.
func (c *Client) ReadExportedVpgSettings(ctx context.Context, token string, vpgNames []string) (*settings.ExportedSettings, error) {
	body := map[string]any{"TimeStamp": token, "VpgNames": vpgNames}
	var doc settings.ExportedSettings
	if err := c.do(ctx, http.MethodPost, "/v1/vpgSettings/readExportedSettings", nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateVpgSettings opens an editable settings draft for an existing VPG
// and returns the draft identifier.
func (c *Client) CreateVpgSettings(ctx context.Context, vpgIdentifier string) (string, error) {
	body := map[string]any{"VpgIdentifier": vpgIdentifier}
	var draftID string
	if err := c.do(ctx, http.MethodPost, "/v1/vpgSettings", nil, body, &draftID); err != nil {
		return "", err
	}
	return draftID, nil
}

// GetVpgSettings reads the live settings tree of an open draft.
func (c *Client) GetVpgSettings(ctx context.Context, draftID string) (*settings.VpgSettings, error) {
	var vpg settings.VpgSettings
	if err := c.do(ctx, http.MethodGet, "/v1/vpgSettings/"+draftID, nil, nil, &vpg); err != nil {
		return nil, err
	}
	return &vpg, nil
}

// UpdateVpgSettings replaces the settings tree of an open draft.
func (c *Client) UpdateVpgSettings(ctx context.Context, draftID string, vpg *settings.VpgSettings) error {
	return c.do(ctx, http.MethodPut, "/v1/vpgSettings/"+draftID, nil, vpg, nil)
}

// DeleteVpgSettings discards an open draft without committing it.
func (c *Client) DeleteVpgSettings(ctx context.Context, draftID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/vpgSettings/"+draftID, nil, nil, nil)
}

// commitPollInterval spaces the task polls of a synchronous commit.
var commitPollInterval = 2 * time.Second

// taskStateSuccess is the terminal state of a task that finished cleanly.
// A complete task in any other state (failed, cancelled, rolled back) means
// the commit did not apply.
const taskStateSuccess = 5

// CommitVpg commits an open draft, applying its settings to the VPG. With
// sync the call polls the resulting task until it completes, failing if
// the appliance reports the task failed.
func (c *Client) CommitVpg(ctx context.Context, draftID, vpgName string, sync bool) error {
	var taskID string
	if err := c.do(ctx, http.MethodPost, "/v1/vpgSettings/"+draftID+"/commit", nil, nil, &taskID); err != nil {
		return err
	}
	if !sync || taskID == "" {
		return nil
	}
	return c.waitForTask(ctx, taskID, vpgName)
}

func (c *Client) waitForTask(ctx context.Context, taskID, vpgName string) error {
	ticker := time.NewTicker(commitPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return &vpgerrors.TransportError{Op: "commit " + vpgName, Message: "wait for commit task canceled", Cause: ctx.Err()}
		case <-ticker.C:
		}

		var task struct {
			Complete bool `json:"Complete"`
			Status   struct {
				State    int    `json:"State"`
				Progress int    `json:"Progress"`
				Message  string `json:"Message"`
			} `json:"Status"`
		}
		if err := c.do(ctx, http.MethodGet, "/v1/tasks/"+taskID, nil, nil, &task); err != nil {
			return err
		}
		if task.Complete {
			if task.Status.State != taskStateSuccess {
				msg := "commit task finished in state " + strconv.Itoa(task.Status.State)
				if task.Status.Message != "" {
					msg += ": " + task.Status.Message
				}
				return &vpgerrors.TransportError{Op: "commit " + vpgName, Message: msg}
			}
			c.logger.Debug().Str("vpg", vpgName).Str("task", taskID).Msg("commit task complete")
			return nil
		}
		c.logger.Debug().Str("vpg", vpgName).Str("task", taskID).Int("progress", task.Status.Progress).Msg("commit in progress")
	}
}
