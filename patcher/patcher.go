package patcher

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/erraggy/vpgtools/differ"
	"github.com/erraggy/vpgtools/flatten"
	"github.com/erraggy/vpgtools/settings"
	"github.com/erraggy/vpgtools/vpgerrors"
)

// Result summarizes one patch pass over a single VPG tree.
type Result struct {
	// Applied lists the record changes written into the tree
	Applied []differ.RecordChange
	// Skipped lists the record changes dropped on lookup misses
	// (lenient mode only), paired with the miss that caused each
	Skipped []Skipped
}

// Skipped pairs a dropped record change with its lookup error.
type Skipped struct {
	Change differ.RecordChange
	Err    *vpgerrors.LookupError
}

// Option configures a patch pass.
type Option func(*config)

type config struct {
	lenient bool
	logger  zerolog.Logger
}

// WithLenientLookup makes lookup misses non-fatal: the miss is logged,
// recorded on the Result, and the pass continues with the remaining
// identities. Only appropriate at commit time against live drafts.
func WithLenientLookup() Option {
	return func(c *config) {
		c.lenient = true
	}
}

// WithLogger supplies the logger used for lenient-mode skip reporting.
// Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Apply writes an approved change set into a VPG tree. The change set must
// have validated beforehand; Apply performs no invariant checking of its
// own. All changes must belong to the given VPG.
func Apply(vpg *settings.VpgSettings, changes []differ.RecordChange, opts ...Option) (*Result, error) {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := &Result{}
	for _, change := range changes {
		if err := applyChange(vpg, change); err != nil {
			var lookupErr *vpgerrors.LookupError
			if errors.As(err, &lookupErr) && cfg.lenient {
				cfg.logger.Error().
					Str("vpg", change.Identity.VpgName).
					Str("vm", change.Identity.VMIdentifier).
					Str("nic", change.Identity.NicIdentifier).
					Msg(lookupErr.Error())
				result.Skipped = append(result.Skipped, Skipped{Change: change, Err: lookupErr})
				continue
			}
			return nil, err
		}
		result.Applied = append(result.Applied, change)
	}
	return result, nil
}

func applyChange(vpg *settings.VpgSettings, change differ.RecordChange) error {
	id := change.Identity
	if vpg.Name() != id.VpgName {
		return &vpgerrors.LookupError{
			VpgName:      vpg.Name(),
			VMIdentifier: id.VMIdentifier,
			Message:      fmt.Sprintf("change targets VPG %q", id.VpgName),
		}
	}

	vm := vpg.FindVM(id.VMIdentifier)
	if vm == nil {
		return &vpgerrors.LookupError{VpgName: id.VpgName, VMIdentifier: id.VMIdentifier}
	}
	nic := vm.FindNic(id.NicIdentifier)
	if nic == nil {
		return &vpgerrors.LookupError{
			VpgName:       id.VpgName,
			VMIdentifier:  id.VMIdentifier,
			NicIdentifier: id.NicIdentifier,
		}
	}

	// Resolve every field before writing the first one, so a change set
	// item applies in full or not at all.
	specs := make([]flatten.FieldSpec, len(change.Fields))
	for i, fc := range change.Fields {
		spec, ok := flatten.Lookup(fc.Field)
		if !ok {
			return &vpgerrors.InputError{
				Source:  "changes",
				Message: fmt.Sprintf("unknown field %q for %s", fc.Field, id),
			}
		}
		specs[i] = spec
	}

	for i, fc := range change.Fields {
		hv := materialize(nic, specs[i].Role)
		specs[i].Set(hv, fc.Updated)
	}
	return nil
}

// materialize returns the backend configuration for a role, creating the
// role and its Hypervisor variant empty when absent.
func materialize(nic *settings.NicSettings, role flatten.Role) *settings.HypervisorNic {
	var slot **settings.NicRole
	if role == flatten.RoleFailoverTest {
		slot = &nic.FailoverTest
	} else {
		slot = &nic.Failover
	}
	if *slot == nil {
		*slot = &settings.NicRole{}
	}
	if (*slot).Hypervisor == nil {
		(*slot).Hypervisor = &settings.HypervisorNic{}
	}
	return (*slot).Hypervisor
}
