package vpgerrors

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrValidation indicates a reconciliation invariant violation.
	ErrValidation = errors.New("validation error")

	// ErrLookup indicates an identity was not found in the settings tree.
	ErrLookup = errors.New("lookup error")

	// ErrTransport indicates a ZVM API call failure.
	ErrTransport = errors.New("transport error")

	// ErrInput indicates malformed tabular input or an invalid settings tree.
	ErrInput = errors.New("input error")
)

// ValidationError represents a reconciliation invariant violation for a
// single NIC record and role. Validation aborts the whole pass before any
// mutation, so the error names the offending identity precisely enough for
// the operator to fix the CSV row and re-run.
type ValidationError struct {
	// VpgName is the VPG the offending record belongs to
	VpgName string
	// VMName is the display name of the VM, if known (may be empty)
	VMName string
	// VMIdentifier is the VM the offending record belongs to
	VMIdentifier string
	// NicIdentifier is the NIC the offending record belongs to
	NicIdentifier string
	// Role is the interface role the rule was evaluated for
	// (e.g. "Failover", "Failover Test")
	Role string
	// Rule identifies the violated rule
	// Values: "gate", "no-data", "exclusivity"
	Rule string
	// Message describes the violation and how to fix it
	Message string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration for VPG '")
	b.WriteString(e.VpgName)
	b.WriteString("'")
	if e.VMName != "" {
		b.WriteString(", VM Name '")
		b.WriteString(e.VMName)
		b.WriteString("'")
	}
	b.WriteString(", VM ID '")
	b.WriteString(e.VMIdentifier)
	b.WriteString("', NIC '")
	b.WriteString(e.NicIdentifier)
	b.WriteString("'")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LookupError represents a desired identity that could not be located in
// the settings tree being patched. This usually means the tree was fetched
// from a different remote state than the one the CSV was edited against.
type LookupError struct {
	// VpgName is the VPG that was searched
	VpgName string
	// VMIdentifier is the VM that was searched for (or searched within)
	VMIdentifier string
	// NicIdentifier is the NIC that was searched for (empty when the VM
	// itself was not found)
	NicIdentifier string
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *LookupError) Error() string {
	var b strings.Builder
	switch {
	case e.NicIdentifier != "":
		b.WriteString("NIC " + e.NicIdentifier + " not found in VM " + e.VMIdentifier)
	case e.VMIdentifier != "":
		b.WriteString("VM " + e.VMIdentifier + " not found")
	default:
		b.WriteString("VPG " + e.VpgName + " not found")
	}
	if e.VpgName != "" && (e.NicIdentifier != "" || e.VMIdentifier != "") {
		b.WriteString(" in VPG " + e.VpgName)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	return b.String()
}

// Is reports whether target matches this error type.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// TransportError represents a ZVM API call failure. The underlying failure
// is surfaced as-is; the reconciliation core performs no retries.
type TransportError struct {
	// Op is the logical API operation that failed
	// (e.g. "export VPG settings", "commit VPG")
	Op string
	// StatusCode is the HTTP status code, if the request reached the server
	// (0 otherwise)
	StatusCode int
	// Message provides additional context from the server response body
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *TransportError) Error() string {
	msg := "transport error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.StatusCode != 0 {
		msg += ": unexpected status " + strconv.Itoa(e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// InputError represents malformed input: a tabular file missing required
// columns, or a structurally invalid settings tree. Input errors fail fast
// at read/flatten time, before any diffing.
type InputError struct {
	// Source identifies the input (file path, "csv", "settings", ...)
	Source string
	// Missing lists required columns or fields that were absent
	Missing []string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *InputError) Error() string {
	msg := "input error"
	if e.Source != "" {
		msg += ": " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Missing) > 0 {
		msg += ": missing " + strings.Join(e.Missing, ", ")
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *InputError) Is(target error) bool {
	return target == ErrInput
}
