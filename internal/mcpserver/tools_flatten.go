package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/settings"
)

type flattenInput struct {
	SettingsPath string `json:"settings_path" jsonschema:"Path to an exported VPG settings file (JSON or YAML)"`
}

type flatRow struct {
	VpgName       string            `json:"vpg_name"`
	VMIdentifier  string            `json:"vm_identifier"`
	NicIdentifier string            `json:"nic_identifier"`
	Fields        map[string]string `json:"fields"`
}

type flattenOutput struct {
	VpgCount int       `json:"vpg_count"`
	RowCount int       `json:"row_count"`
	Rows     []flatRow `json:"rows,omitempty"`
}

func handleFlatten(_ context.Context, _ *mcp.CallToolRequest, input flattenInput) (*mcp.CallToolResult, flattenOutput, error) {
	doc, err := settings.DecodeFile(input.SettingsPath)
	if err != nil {
		return errResult(err), flattenOutput{}, nil
	}

	records := flatten.Flatten(doc)
	output := flattenOutput{
		VpgCount: len(doc.Vpgs),
		RowCount: len(records),
	}
	for _, rec := range records {
		row := flatRow{
			VpgName:       rec.Identity.VpgName,
			VMIdentifier:  rec.Identity.VMIdentifier,
			NicIdentifier: rec.Identity.NicIdentifier,
			Fields:        make(map[string]string, len(rec.Fields())),
		}
		for _, name := range rec.Fields() {
			row.Fields[name] = rec.Get(name)
		}
		output.Rows = append(output.Rows, row)
	}
	return nil, output, nil
}
