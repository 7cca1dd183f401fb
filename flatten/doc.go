// Package flatten converts a nested VPG settings tree into flat
// row-oriented records, one per NIC, and normalizes scalar values so that
// equivalent values compare equal regardless of source representation.
//
// The tabular desired-state source (CSV) carries everything as strings
// while the tree-derived current state carries booleans and nulls; without
// [Normalize] the diff would report false changes on every unedited row.
//
// The package also owns the declarative field table shared by the differ,
// validator, and patcher: every editable column is described once, with
// its role, its getter against the settings tree, and its setter including
// the empty-value default. See [Fields].
package flatten
