package validator

import (
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// Rule identifiers carried on validation errors.
const (
	// RuleGate: address data supplied without consent to replace.
	RuleGate = "gate"
	// RuleNoData: consent given but no address data of either kind.
	RuleNoData = "no-data"
	// RuleExclusivity: DHCP and static configuration both supplied.
	RuleExclusivity = "exclusivity"
)

// Option configures a validation run.
type Option func(*config)

type config struct {
	vmNames map[string]string
}

// WithVMNames supplies a VM identifier → display name mapping so that
// violation messages can name the VM the way the operator knows it.
func WithVMNames(names map[string]string) Option {
	return func(c *config) {
		c.vmNames = names
	}
}

// Validate checks every record against the role invariants and returns a
// *vpgerrors.ValidationError for the first violation found, or nil when
// all records pass. It must run before any tree mutation.
func Validate(records []*flatten.Record, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	for _, rec := range records {
		if err := validateRecord(rec, cfg.vmNames[rec.Identity.VMIdentifier]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRecord checks a single record against the role invariants.
func ValidateRecord(rec *flatten.Record, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return validateRecord(rec, cfg.vmNames[rec.Identity.VMIdentifier])
}

func validateRecord(rec *flatten.Record, vmName string) error {
	for _, role := range flatten.Roles() {
		if err := validateRole(rec, role, vmName); err != nil {
			return err
		}
	}
	return nil
}

func validateRole(rec *flatten.Record, role flatten.Role, vmName string) error {
	prefix := string(role) + " "
	replace := flatten.IsTrue(rec.Get(prefix + "ShouldReplaceIpConfiguration"))
	dhcp := flatten.IsTrue(rec.Get(prefix + "DHCP"))

	hasStatic := false
	for _, field := range flatten.RoleFields(role) {
		if field.Address && !flatten.IsEmpty(rec.Get(field.Name)) {
			hasStatic = true
			break
		}
	}

	fail := func(rule, message string) error {
		return &vpgerrors.ValidationError{
			VpgName:       rec.Identity.VpgName,
			VMName:        vmName,
			VMIdentifier:  rec.Identity.VMIdentifier,
			NicIdentifier: rec.Identity.NicIdentifier,
			Role:          string(role),
			Rule:          rule,
			Message:       message,
		}
	}

	if !replace && (dhcp || hasStatic) {
		return fail(RuleGate,
			prefix+"ShouldReplaceIpConfiguration is False but IP settings are present. "+
				"Set ShouldReplaceIpConfiguration to True to modify IP settings.")
	}
	if replace && !dhcp && !hasStatic {
		return fail(RuleNoData,
			prefix+"ShouldReplaceIpConfiguration is True but no IP configuration is provided. "+
				"Either set DHCP=True or provide IP configuration (IP, Subnet, Gateway, DNS1, DNS2).")
	}
	if dhcp && hasStatic {
		return fail(RuleExclusivity,
			"Cannot have "+prefix+"DHCP=True and static IP settings. "+
				"Please remove static IP settings or set DHCP=False.")
	}
	return nil
}
