package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/vpgtools/csvio"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/internal/testutil"
	"github.com/erraggy/vpgtools/settings"
	"github.com/erraggy/vpgtools/vpgerrors"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.Error(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestSplitVpgNames(t *testing.T) {
	assert.Nil(t, SplitVpgNames(""))
	assert.Equal(t, []string{"VpgA"}, SplitVpgNames("VpgA"))
	assert.Equal(t, []string{"VpgA", "VpgB"}, SplitVpgNames("VpgA, VpgB"))
	assert.Equal(t, []string{"VpgA"}, SplitVpgNames("VpgA,,"))
}

func TestSetupImportFlags(t *testing.T) {
	fs, flags := SetupImportFlags()
	require.NoError(t, fs.Parse([]string{"--vpg-names", "VpgA,VpgB", "--sync", "-y", "nics.csv"}))
	assert.Equal(t, "VpgA,VpgB", flags.VpgNames)
	assert.True(t, flags.Sync)
	assert.True(t, flags.Yes)
	assert.Equal(t, 1, fs.NArg())
}

func TestSetupExportFlags(t *testing.T) {
	fs, flags := SetupExportFlags()
	require.NoError(t, fs.Parse([]string{"--config", "zvm.yaml", "-o", "out.csv"}))
	assert.Equal(t, "zvm.yaml", flags.Connection.ConfigPath)
	assert.Equal(t, "out.csv", flags.Output)
	assert.False(t, flags.Connection.Verbose)
}

func TestHandleImportRequiresCSVArg(t *testing.T) {
	err := HandleImport([]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one CSV file path")
}

func TestBuildClientRequiresCredentials(t *testing.T) {
	fs, flags := SetupExportFlags()
	require.NoError(t, fs.Parse([]string{"--zvm-address", "zvm.local"}))

	_, err := flags.Connection.BuildClient(NewLogger(false))
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrInput))
}

// writeDiffFixtures lays down a settings file and an edited CSV.
func writeDiffFixtures(t *testing.T, edit func(records []*flatten.Record)) (csvPath, settingsPath string) {
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
	return csvPath, settingsPath
}

func TestRunDiffText(t *testing.T) {
	csvPath, settingsPath := writeDiffFixtures(t, func(records []*flatten.Record) {
		records[0].Set("Failover IP", "10.0.0.9")
	})

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, csvPath, settingsPath, &DiffFlags{Format: FormatText}))
	assert.Contains(t, out.String(), "VPG: VpgA")
	assert.Contains(t, out.String(), "Current: 10.0.0.5")
	assert.Contains(t, out.String(), "Updated: 10.0.0.9")
}

func TestRunDiffJSON(t *testing.T) {
	csvPath, settingsPath := writeDiffFixtures(t, func(records []*flatten.Record) {
		records[0].Set("Failover IP", "10.0.0.9")
	})

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, csvPath, settingsPath, &DiffFlags{Format: FormatJSON}))

	var report diffReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.NicsChanged)
	assert.Equal(t, 1, report.FieldsChanged)
}

func TestRunDiffValidatesFirst(t *testing.T) {
	csvPath, settingsPath := writeDiffFixtures(t, func(records []*flatten.Record) {
		records[0].Set("Failover Test IP", "10.9.9.9")
	})

	var out bytes.Buffer
	err := runDiff(&out, csvPath, settingsPath, &DiffFlags{Format: FormatText})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vpgerrors.ErrValidation))

	require.NoError(t, runDiff(&out, csvPath, settingsPath, &DiffFlags{Format: FormatText, SkipChecks: true}))
}

func TestHandleDiffArgCount(t *testing.T) {
	err := HandleDiff([]string{"only-one.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a CSV file and a settings file")
}
