package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/validator"
	"github.com/erraggy/vpgtools/vpgerrors"
)

type validateInput struct {
	CSVPath string `json:"csv_path" jsonschema:"Path to a desired-state CSV file"`
}

type violation struct {
	VpgName       string `json:"vpg_name"`
	VMIdentifier  string `json:"vm_identifier"`
	NicIdentifier string `json:"nic_identifier"`
	Role          string `json:"role"`
	Rule          string `json:"rule"`
	Message       string `json:"message"`
}

type validateOutput struct {
	Valid     bool       `json:"valid"`
	RowCount  int        `json:"row_count"`
	Violation *violation `json:"violation,omitempty"`
	Summary   string     `json:"summary"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	records, err := csvio.ReadFile(input.CSVPath)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{RowCount: len(records)}
	if err := validator.Validate(records); err != nil {
		var ve *vpgerrors.ValidationError
		if !errors.As(err, &ve) {
			return errResult(err), validateOutput{}, nil
		}
		output.Violation = &violation{
			VpgName:       ve.VpgName,
			VMIdentifier:  ve.VMIdentifier,
			NicIdentifier: ve.NicIdentifier,
			Role:          ve.Role,
			Rule:          ve.Rule,
			Message:       ve.Message,
		}
		output.Summary = "Validation failed: " + ve.Message
		return nil, output, nil
	}

	output.Valid = true
	output.Summary = "All rows satisfy the IP configuration invariants."
	return nil, output, nil
}
