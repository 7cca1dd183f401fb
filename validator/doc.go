// Package validator enforces the cross-field invariants a desired NIC
// record must satisfy before any diff is trusted or any tree is mutated.
//
// For each record and each role independently, with replace = the
// ShouldReplaceIpConfiguration gate, dhcp = the DHCP flag, and hasStatic =
// any of the five static-address fields non-empty:
//
//  1. replace=false with dhcp or static data present is rejected: address
//     data was supplied without consent to replace.
//  2. replace=true with neither dhcp nor static data is rejected: consent
//     was given but no address configuration of either kind supplied.
//  3. dhcp=true with static data present is rejected: DHCP and static
//     configuration are mutually exclusive.
//
// The first violation aborts the whole pass with zero side effects;
// validation is not best-effort partial-success. The operator fixes the
// CSV and re-runs.
package validator
