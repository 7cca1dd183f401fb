// Package patcher applies an approved change set back into a VPG settings
// tree, mutating only the named fields at the named identities and leaving
// every untouched branch exactly as read.
//
// Sub-structures are materialized lazily: an absent backend variant is
// created empty before the first write to its role, and an absent IpConfig
// is created with IsDhcp=false and null address fields before the first
// DHCP or address write. A change set item is applied in full or not at
// all: the target NIC is located and every field name resolved before the
// first field is written.
//
// Lookup misses are fatal by default: a desired identity missing from the
// tree means the tree was fetched from a different remote state than the
// one being edited. At commit time, against live per-VPG drafts, callers
// opt into lenient mode instead, where a miss is logged, recorded, and
// skipped so the remaining identities still apply.
package patcher
