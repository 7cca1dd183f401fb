package flatten

import "github.com/erraggy/vpgtools/settings"

// Flatten walks an exported settings document and emits one record per
// NIC in tree traversal order (VPG → VM → NIC). Every field-table column
// is populated: when a role or its backend variant is absent the column
// gets its getter default (empty string, or "false" for booleans).
func Flatten(doc *settings.ExportedSettings) []*Record {
	var records []*Record
	for _, vpg := range doc.Vpgs {
		records = append(records, FlattenVpg(vpg)...)
	}
	return records
}

// FlattenVpg emits the records of a single VPG tree.
func FlattenVpg(vpg *settings.VpgSettings) []*Record {
	var records []*Record
	for _, vm := range vpg.Vms {
		for _, nic := range vm.Nics {
			records = append(records, flattenNic(vpg.Name(), vm.VmIdentifier, nic))
		}
	}
	return records
}

func flattenNic(vpgName, vmID string, nic *settings.NicSettings) *Record {
	rec := NewRecord(Identity{
		VpgName:       vpgName,
		VMIdentifier:  vmID,
		NicIdentifier: nic.NicIdentifier,
	})
	for _, field := range fieldTable {
		hv := field.Role.RoleOf(nic).Backend()
		rec.Set(field.Name, field.Get(hv))
	}
	return rec
}

// Index keys records by identity for diff lookups. Later duplicates win,
// matching dictionary-lookup semantics of the tabular source.
func Index(records []*Record) map[Identity]*Record {
	idx := make(map[Identity]*Record, len(records))
	for _, rec := range records {
		idx[rec.Identity] = rec
	}
	return idx
}
