package patcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/vpgtools/differ"
	"github.com/erraggy/vpgtools/flatten"
)

// Flattening a tree and patching it with the diff of that flattening
// against itself must leave the tree unchanged.
func TestFlattenDiffPatchRoundTrip(t *testing.T) {
	vpg := sampleVpg()
	before := vpg.Clone()

	records := flatten.FlattenVpg(vpg)
	result := differ.Diff(records, records)
	assert.False(t, result.HasChanges())

	_, err := Apply(vpg, result.Changes)
	require.NoError(t, err)
	assert.True(t, vpg.Equal(before))
}

// Applying a real diff and re-flattening must produce the desired values.
func TestPatchConverges(t *testing.T) {
	vpg := sampleVpg()

	current := flatten.FlattenVpg(vpg)
	desired := flatten.FlattenVpg(vpg.Clone())
	for _, rec := range desired {
		if rec.Identity.NicIdentifier == "nic-0" {
			rec.Set("Failover IP", "10.0.0.6")
			rec.Set("Failover Test Network", "net-green")
		}
	}

	result := differ.Diff(current, desired)
	require.True(t, result.HasChanges())

	_, err := Apply(vpg, result.Changes)
	require.NoError(t, err)

	after := flatten.FlattenVpg(vpg)
	assert.False(t, differ.Diff(after, desired).HasChanges(), "patched tree flattens to the desired records")
}
