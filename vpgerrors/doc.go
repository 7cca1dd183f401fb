// Package vpgerrors provides structured error types for the vpgtools library.
//
// Import path: github.com/erraggy/vpgtools/vpgerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and react
// appropriately: a validation error means the operator should fix the CSV and
// re-run, a lookup error means the remote tree no longer matches the edited
// snapshot, a transport error means the ZVM call itself failed.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [ValidationError]: a NIC record violates a reconciliation invariant
//     (consent gate, DHCP/static exclusivity)
//   - [LookupError]: an identity from the desired record set was not found
//     in the settings tree being patched
//   - [TransportError]: a ZVM API call failed
//   - [InputError]: malformed tabular input or a structurally invalid
//     settings tree
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrLookup]: matches any [LookupError]
//   - [ErrTransport]: matches any [TransportError]
//   - [ErrInput]: matches any [InputError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	err := validator.Validate(records)
//	if errors.Is(err, vpgerrors.ErrValidation) {
//	    // Operator must fix the CSV and re-run
//	}
//
// Extract error details with errors.As():
//
//	var lookupErr *vpgerrors.LookupError
//	if errors.As(err, &lookupErr) {
//	    fmt.Printf("not found: NIC %s in VPG %s\n", lookupErr.NicIdentifier, lookupErr.VpgName)
//	}
//
// All error types support error chaining via the Cause field and Unwrap().
package vpgerrors
