package mcpserver

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/differ"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/settings"
)

type diffInput struct {
	CSVPath      string `json:"csv_path"      jsonschema:"Path to the desired-state CSV file"`
	SettingsPath string `json:"settings_path" jsonschema:"Path to the exported VPG settings file holding the current state"`
}

type fieldChange struct {
	Field   string `json:"field"`
	Current string `json:"current"`
	Updated string `json:"updated"`
}

type nicChange struct {
	VpgName       string        `json:"vpg_name"`
	VMIdentifier  string        `json:"vm_identifier"`
	NicIdentifier string        `json:"nic_identifier"`
	Fields        []fieldChange `json:"fields"`
}

type diffOutput struct {
	NicsChanged   int         `json:"nics_changed"`
	FieldsChanged int         `json:"fields_changed"`
	Changes       []nicChange `json:"changes,omitempty"`
	Summary       string      `json:"summary"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	desired, err := csvio.ReadFile(input.CSVPath)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}
	doc, err := settings.DecodeFile(input.SettingsPath)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	result := differ.Diff(flatten.Flatten(doc), desired)

	output := diffOutput{
		NicsChanged:   len(result.Changes),
		FieldsChanged: result.FieldCount,
	}
	for _, change := range result.Changes {
		nc := nicChange{
			VpgName:       change.Identity.VpgName,
			VMIdentifier:  change.Identity.VMIdentifier,
			NicIdentifier: change.Identity.NicIdentifier,
		}
		for _, fc := range change.Fields {
			nc.Fields = append(nc.Fields, fieldChange{Field: fc.Field, Current: fc.Current, Updated: fc.Updated})
		}
		output.Changes = append(output.Changes, nc)
	}
	output.Summary = buildDiffSummary(output)
	return nil, output, nil
}

func buildDiffSummary(output diffOutput) string {
	if output.NicsChanged == 0 {
		return "No changes detected."
	}
	return formatCount(output.FieldsChanged, "field change") +
		" across " + formatCount(output.NicsChanged, "NIC")
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
