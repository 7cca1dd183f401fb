// Package settings models the nested VPG settings tree exchanged with the
// ZVM management API.
//
// The tree is the unit of truth for a reconciliation pass: group (VPG) →
// member (VM) → interface (NIC), with per-NIC role configuration for live
// failover and test failover. Each role holds a tagged backend variant;
// Hypervisor is the only backend this tool edits, and modeling it as a
// struct field (rather than a free-form keyed map) lets the validator and
// patcher pattern-match exhaustively.
//
// Every struct carries an Extra map capturing fields this model does not
// enumerate, so a tree fetched from the API re-serializes without dropping
// sibling data the tool never touches (journal settings, recovery options,
// and whatever future API versions add).
//
// Decode accepts both JSON (the API wire format) and YAML (convenient for
// offline fixtures); Encode always emits JSON.
package settings
