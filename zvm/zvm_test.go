package zvm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/vpgtools/internal/testutil"
	"github.com/erraggy/vpgtools/settings"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// fakeZVM serves the token endpoint plus whatever API handlers a test
// registers, counting token fetches.
type fakeZVM struct {
	*httptest.Server
	mux         *http.ServeMux
	tokenCount  atomic.Int32
	issuedToken string
}

func newFakeZVM(t *testing.T) *fakeZVM {
	t.Helper()
	f := &fakeZVM{mux: http.NewServeMux(), issuedToken: "tok-1"}
	f.mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		f.tokenCount.Add(1)
		writeJSON(w, map[string]any{"access_token": f.issuedToken, "expires_in": 300})
	})
	f.Server = httptest.NewServer(f.mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeZVM) client(t *testing.T) *Client {
	t.Helper()
	c, err := New(Config{Address: f.URL, ClientID: "api-client", ClientSecret: "secret"})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(Config{Address: "zvm.local"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrInput))

	var ie *vpgerrors.InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, []string{"client_id", "client_secret"}, ie.Missing)
}

func TestBearerTokenOnRequests(t *testing.T) {
	f := newFakeZVM(t)
	f.mux.HandleFunc("/v1/vpgs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, []VpgInfo{{VpgName: "VpgA", VpgIdentifier: "vpg-guid-1"}})
	})

	c := f.client(t)
	vpgs, err := c.ListVpgs(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, vpgs, 1)
	assert.Equal(t, "VpgA", vpgs[0].VpgName)
	assert.Equal(t, int32(1), f.tokenCount.Load())
}

func TestTokenRefreshOn401(t *testing.T) {
	f := newFakeZVM(t)
	var calls atomic.Int32
	f.mux.HandleFunc("/v1/vpgs", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Expire the first token so the refresh fetches a new one
			f.issuedToken = "tok-2"
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		writeJSON(w, []VpgInfo{})
	})

	c := f.client(t)
	_, err := c.ListVpgs(t.Context(), "")
	require.NoError(t, err)

	if calls.Load() != 2 {
		t.Errorf("expected 2 api calls, got %d", calls.Load())
	}
	assert.Equal(t, int32(2), f.tokenCount.Load())
}

func TestServerErrorWrapsTransport(t *testing.T) {
	f := newFakeZVM(t)
	f.mux.HandleFunc("/v1/vpgs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := f.client(t).ListVpgs(t.Context(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrTransport))

	var te *vpgerrors.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Contains(t, te.Message, "boom")
}

func TestGetVpgMiss(t *testing.T) {
	f := newFakeZVM(t)
	f.mux.HandleFunc("/v1/vpgs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []VpgInfo{})
	})

	_, err := f.client(t).GetVpg(t.Context(), "VpgZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrLookup))
}

func TestListVMName(t *testing.T) {
	f := newFakeZVM(t)
	f.mux.HandleFunc("/v1/vms", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("vmIdentifier") == "vm-1" {
			writeJSON(w, []map[string]string{{"VmName": "web-01"}})
			return
		}
		writeJSON(w, []map[string]string{})
	})

	c := f.client(t)
	name, err := c.ListVMName(t.Context(), "vm-1")
	require.NoError(t, err)
	assert.Equal(t, "web-01", name)

	name, err = c.ListVMName(t.Context(), "vm-gone")
	require.NoError(t, err, "unknown identifier is not an error")
	assert.Empty(t, name)
}

func TestExportAndRead(t *testing.T) {
	f := newFakeZVM(t)
	doc := testutil.Export(testutil.Vpg("VpgA", "vm-1",
		testutil.Nic("nic-0", "net-blue", testutil.StaticIPConfig("10.0.0.5")),
	))

	f.mux.HandleFunc("/v1/vpgSettings/exportSettings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"VpgA"}, body["VpgNames"])
		writeJSON(w, map[string]string{"TimeStamp": "2026-08-25T10:00:00Z"})
	})
	f.mux.HandleFunc("/v1/vpgSettings/readExportedSettings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-08-25T10:00:00Z", body["TimeStamp"])
		writeJSON(w, doc)
	})

	c := f.client(t)
	token, err := c.ExportVpgSettings(t.Context(), []string{"VpgA"})
	require.NoError(t, err)

	got, err := c.ReadExportedVpgSettings(t.Context(), token, []string{"VpgA"})
	require.NoError(t, err)
	require.Len(t, got.Vpgs, 1)
	assert.Equal(t, "VpgA", got.Vpgs[0].Name())
}

func TestDraftLifecycle(t *testing.T) {
	f := newFakeZVM(t)
	vpg := testutil.Vpg("VpgA", "vm-1", testutil.Nic("nic-0", "net-blue", nil))
	var updated *settings.VpgSettings
	deleted := false

	f.mux.HandleFunc("POST /v1/vpgSettings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vpg-guid-1", body["VpgIdentifier"])
		writeJSON(w, "draft-1")
	})
	f.mux.HandleFunc("GET /v1/vpgSettings/draft-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, vpg)
	})
	f.mux.HandleFunc("PUT /v1/vpgSettings/draft-1", func(w http.ResponseWriter, r *http.Request) {
		var body settings.VpgSettings
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		updated = &body
		w.WriteHeader(http.StatusOK)
	})
	f.mux.HandleFunc("DELETE /v1/vpgSettings/draft-1", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusOK)
	})

	c := f.client(t)
	ctx := t.Context()

	draftID, err := c.CreateVpgSettings(ctx, "vpg-guid-1")
	require.NoError(t, err)
	assert.Equal(t, "draft-1", draftID)

	draft, err := c.GetVpgSettings(ctx, draftID)
	require.NoError(t, err)
	assert.Equal(t, "VpgA", draft.Name())

	draft.Vms[0].Nics[0].Failover.Hypervisor.NetworkIdentifier = "net-green"
	require.NoError(t, c.UpdateVpgSettings(ctx, draftID, draft))
	require.NotNil(t, updated)
	assert.Equal(t, "net-green", updated.Vms[0].Nics[0].Failover.Hypervisor.NetworkIdentifier)

	require.NoError(t, c.DeleteVpgSettings(ctx, draftID))
	assert.True(t, deleted)
}

func TestCommitVpgSyncPollsTask(t *testing.T) {
	old := commitPollInterval
	commitPollInterval = 5 * time.Millisecond
	t.Cleanup(func() { commitPollInterval = old })

	f := newFakeZVM(t)
	var polls atomic.Int32
	f.mux.HandleFunc("POST /v1/vpgSettings/draft-1/commit", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "task-1")
	})
	f.mux.HandleFunc("GET /v1/tasks/task-1", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) >= 2 {
			writeJSON(w, map[string]any{
				"Complete": true,
				"Status":   map[string]any{"State": taskStateSuccess, "Progress": 100},
			})
			return
		}
		writeJSON(w, map[string]any{
			"Complete": false,
			"Status":   map[string]any{"State": 1, "Progress": 50},
		})
	})

	err := f.client(t).CommitVpg(t.Context(), "draft-1", "VpgA", true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
}

func TestCommitVpgSyncFailedTask(t *testing.T) {
	old := commitPollInterval
	commitPollInterval = 5 * time.Millisecond
	t.Cleanup(func() { commitPollInterval = old })

	f := newFakeZVM(t)
	f.mux.HandleFunc("POST /v1/vpgSettings/draft-1/commit", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "task-1")
	})
	f.mux.HandleFunc("GET /v1/tasks/task-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"Complete": true,
			"Status":   map[string]any{"State": 6, "Message": "commit failed: insufficient resources"},
		})
	})

	err := f.client(t).CommitVpg(t.Context(), "draft-1", "VpgA", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, vpgerrors.ErrTransport)
	assert.Contains(t, err.Error(), "state 6")
	assert.Contains(t, err.Error(), "insufficient resources")
}

func TestCommitVpgAsync(t *testing.T) {
	f := newFakeZVM(t)
	f.mux.HandleFunc("POST /v1/vpgSettings/draft-1/commit", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, "task-1")
	})

	err := f.client(t).CommitVpg(t.Context(), "draft-1", "VpgA", false)
	require.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zvm.yaml")
	data := strings.Join([]string{
		"address: zvm.example.com",
		"client_id: api-client",
		"client_secret: s3cret",
		"ignore_ssl: true",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "zvm.example.com", cfg.Address)
	assert.Equal(t, "api-client", cfg.ClientID)
	assert.Equal(t, "s3cret", cfg.ClientSecret)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrInput))
}
