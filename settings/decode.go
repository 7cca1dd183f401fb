package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/vpgtools/vpgerrors"
)

// Decode parses an exported-settings document from JSON or YAML and
// validates its structure. The format is detected from the content: a
// document starting with '{' is treated as JSON, anything else as YAML.
func Decode(data []byte) (*ExportedSettings, error) {
	var doc ExportedSettings
	if err := unmarshal(data, &doc); err != nil {
		return nil, &vpgerrors.InputError{Source: "settings", Message: "cannot parse exported settings", Cause: err}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeFile reads and parses an exported-settings document from a file.
func DecodeFile(path string) (*ExportedSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &vpgerrors.InputError{Source: path, Message: "cannot read settings file", Cause: err}
	}
	doc, err := Decode(data)
	if err != nil {
		var ie *vpgerrors.InputError
		if errors.As(err, &ie) && ie.Source == "settings" {
			ie.Source = path
		}
		return nil, err
	}
	return doc, nil
}

// DecodeVpg parses a single VPG settings tree (the shape returned by the
// draft-settings endpoint) from JSON or YAML.
func DecodeVpg(data []byte) (*VpgSettings, error) {
	var vpg VpgSettings
	if err := unmarshal(data, &vpg); err != nil {
		return nil, &vpgerrors.InputError{Source: "settings", Message: "cannot parse VPG settings", Cause: err}
	}
	if err := vpg.Validate(); err != nil {
		return nil, err
	}
	return &vpg, nil
}

// Encode serializes an exported-settings document as JSON.
func Encode(doc *ExportedSettings) ([]byte, error) {
	return json.Marshal(doc)
}

// EncodeFile writes an exported-settings document to a file as indented JSON.
func EncodeFile(path string, doc *ExportedSettings) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// unmarshal detects JSON vs YAML by the first non-space byte. YAML is a
// superset of JSON, but the JSON path keeps the Extra capture exact for
// API payloads.
func unmarshal(data []byte, v any) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(data, v)
}

// Validate checks the structural invariants of the exported document:
// every VPG is named, names are unique across the collection, and each
// VPG's subtree validates.
func (e *ExportedSettings) Validate() error {
	seen := make(map[string]bool, len(e.Vpgs))
	for i, vpg := range e.Vpgs {
		if vpg == nil {
			return &vpgerrors.InputError{Source: "settings", Message: fmt.Sprintf("VPG entry %d is null", i)}
		}
		if err := vpg.Validate(); err != nil {
			return err
		}
		name := vpg.Name()
		if seen[name] {
			return &vpgerrors.InputError{Source: "settings", Message: fmt.Sprintf("duplicate VPG name %q", name)}
		}
		seen[name] = true
	}
	return nil
}

// Validate checks the structural invariants of a single VPG tree: a named
// Basic block, non-empty unique VM identifiers, and non-empty unique NIC
// identifiers within each VM.
func (v *VpgSettings) Validate() error {
	if v.Basic == nil || v.Basic.Name == "" {
		return &vpgerrors.InputError{Source: "settings", Message: "VPG settings missing Basic.Name"}
	}
	vmSeen := make(map[string]bool, len(v.Vms))
	for _, vm := range v.Vms {
		if vm == nil || vm.VmIdentifier == "" {
			return &vpgerrors.InputError{
				Source:  "settings",
				Message: fmt.Sprintf("VPG %q has a VM without VmIdentifier", v.Basic.Name),
			}
		}
		if vmSeen[vm.VmIdentifier] {
			return &vpgerrors.InputError{
				Source:  "settings",
				Message: fmt.Sprintf("VPG %q has duplicate VM identifier %q", v.Basic.Name, vm.VmIdentifier),
			}
		}
		vmSeen[vm.VmIdentifier] = true

		nicSeen := make(map[string]bool, len(vm.Nics))
		for _, nic := range vm.Nics {
			if nic == nil || nic.NicIdentifier == "" {
				return &vpgerrors.InputError{
					Source:  "settings",
					Message: fmt.Sprintf("VM %q in VPG %q has a NIC without NicIdentifier", vm.VmIdentifier, v.Basic.Name),
				}
			}
			if nicSeen[nic.NicIdentifier] {
				return &vpgerrors.InputError{
					Source:  "settings",
					Message: fmt.Sprintf("VM %q in VPG %q has duplicate NIC identifier %q", vm.VmIdentifier, v.Basic.Name, nic.NicIdentifier),
				}
			}
			nicSeen[nic.NicIdentifier] = true
		}
	}
	return nil
}

// FindVpg returns the VPG with the given name, or nil.
func (e *ExportedSettings) FindVpg(name string) *VpgSettings {
	for _, vpg := range e.Vpgs {
		if vpg.Name() == name {
			return vpg
		}
	}
	return nil
}

// FindVM returns the VM with the given identifier, or nil.
func (v *VpgSettings) FindVM(vmIdentifier string) *VMSettings {
	for _, vm := range v.Vms {
		if vm.VmIdentifier == vmIdentifier {
			return vm
		}
	}
	return nil
}

// FindNic returns the NIC with the given identifier, or nil.
func (v *VMSettings) FindNic(nicIdentifier string) *NicSettings {
	for _, nic := range v.Nics {
		if nic.NicIdentifier == nicIdentifier {
			return nic
		}
	}
	return nil
}
