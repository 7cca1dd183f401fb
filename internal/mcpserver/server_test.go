package mcpserver

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/internal/testutil"
	"github.com/erraggy/vpgtools/settings"
)

// writeFixtures lays down an exported settings file and a matching CSV in
// a temp dir, returning both paths.
func writeFixtures(t *testing.T, edit func(records []*flatten.Record)) (settingsPath, csvPath string) {
	t.Helper()
	doc := testutil.Export(testutil.Vpg("VpgA", "vm-1",
		testutil.Nic("nic-0", "net-blue", testutil.StaticIPConfig("10.0.0.5")),
	))

	dir := t.TempDir()
	settingsPath = filepath.Join(dir, "settings.json")
	require.NoError(t, settings.EncodeFile(settingsPath, doc))

	records := flatten.Flatten(doc)
	if edit != nil {
		edit(records)
	}
	csvPath = filepath.Join(dir, "nics.csv")
	require.NoError(t, csvio.WriteFile(csvPath, records))
	return settingsPath, csvPath
}

func TestFlattenTool(t *testing.T) {
	settingsPath, _ := writeFixtures(t, nil)

	_, output, err := handleFlatten(context.Background(), &mcp.CallToolRequest{}, flattenInput{SettingsPath: settingsPath})
	require.NoError(t, err)

	assert.Equal(t, 1, output.VpgCount)
	assert.Equal(t, 1, output.RowCount)
	require.Len(t, output.Rows, 1)
	assert.Equal(t, "VpgA", output.Rows[0].VpgName)
	assert.Equal(t, "10.0.0.5", output.Rows[0].Fields["Failover IP"])
}

func TestFlattenTool_MissingFile(t *testing.T) {
	result, _, err := handleFlatten(context.Background(), &mcp.CallToolRequest{}, flattenInput{
		SettingsPath: filepath.Join(t.TempDir(), "nope.json"),
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateTool_Valid(t *testing.T) {
	_, csvPath := writeFixtures(t, nil)

	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{CSVPath: csvPath})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, 1, output.RowCount)
	assert.Nil(t, output.Violation)
}

func TestValidateTool_GateViolation(t *testing.T) {
	_, csvPath := writeFixtures(t, func(records []*flatten.Record) {
		// Static IP behind a false consent gate
		records[0].Set("Failover Test IP", "10.9.9.9")
	})

	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, validateInput{CSVPath: csvPath})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.NotNil(t, output.Violation)
	assert.Equal(t, "gate", output.Violation.Rule)
	assert.Equal(t, "nic-0", output.Violation.NicIdentifier)
	assert.Contains(t, output.Summary, "Validation failed")
}

func TestDiffTool(t *testing.T) {
	settingsPath, csvPath := writeFixtures(t, func(records []*flatten.Record) {
		records[0].Set("Failover IP", "10.0.0.9")
		records[0].Set("Failover Gateway", "10.0.0.254")
	})

	_, output, err := handleDiff(context.Background(), &mcp.CallToolRequest{}, diffInput{
		CSVPath:      csvPath,
		SettingsPath: settingsPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, output.NicsChanged)
	assert.Equal(t, 2, output.FieldsChanged)
	require.Len(t, output.Changes, 1)
	assert.Equal(t, "2 field changes across 1 NIC", output.Summary)
}

func TestDiffTool_NoChanges(t *testing.T) {
	settingsPath, csvPath := writeFixtures(t, nil)

	_, output, err := handleDiff(context.Background(), &mcp.CallToolRequest{}, diffInput{
		CSVPath:      csvPath,
		SettingsPath: settingsPath,
	})
	require.NoError(t, err)
	assert.Zero(t, output.NicsChanged)
	assert.Equal(t, "No changes detected.", output.Summary)
}

func TestSanitizeError(t *testing.T) {
	err := errors.New("open /home/operator/secret/nics.csv: no such file")
	got := sanitizeError(err)
	assert.NotContains(t, got, "/home/operator")
	assert.Contains(t, got, "<path>")
}
