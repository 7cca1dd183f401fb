package settings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/vpgtools/vpgerrors"
)

const sampleExportJSON = `{
  "ExportedVpgSettingsApi": [
    {
      "Basic": {"Name": "VpgTest1", "Priority": "Medium"},
      "Journal": {"Hard": {"Limit": 75}},
      "Vms": [
        {
          "VmIdentifier": "vm-100",
          "Nics": [
            {
              "NicIdentifier": "nic-0",
              "Failover": {
                "Hypervisor": {
                  "NetworkIdentifier": "net-blue",
                  "ShouldReplaceIpConfiguration": true,
                  "DnsSuffix": "corp.local",
                  "IpConfig": {
                    "IsDhcp": false,
                    "StaticIp": "10.0.0.5",
                    "SubnetMask": "255.255.255.0",
                    "Gateway": "10.0.0.1",
                    "PrimaryDns": "10.0.0.2",
                    "SecondaryDns": null
                  }
                }
              },
              "FailoverTest": {"Hypervisor": {"NetworkIdentifier": "net-test", "ShouldReplaceIpConfiguration": false}}
            },
            {"NicIdentifier": "nic-1"}
          ]
        }
      ]
    }
  ]
}`

func TestDecodeJSON(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)
	require.Len(t, doc.Vpgs, 1)

	vpg := doc.Vpgs[0]
	assert.Equal(t, "VpgTest1", vpg.Name())
	require.Len(t, vpg.Vms, 1)
	require.Len(t, vpg.Vms[0].Nics, 2)

	nic := vpg.Vms[0].Nics[0]
	require.NotNil(t, nic.Failover)
	hv := nic.Failover.Backend()
	require.NotNil(t, hv)
	assert.Equal(t, "net-blue", hv.NetworkIdentifier)
	assert.True(t, hv.ShouldReplaceIpConfiguration)
	require.NotNil(t, hv.IpConfig)
	assert.False(t, hv.IpConfig.IsDhcp)
	require.NotNil(t, hv.IpConfig.StaticIp)
	assert.Equal(t, "10.0.0.5", *hv.IpConfig.StaticIp)
	assert.Nil(t, hv.IpConfig.SecondaryDns)

	// Bare NIC with no roles
	assert.Nil(t, vpg.Vms[0].Nics[1].Failover)
	assert.Nil(t, vpg.Vms[0].Nics[1].FailoverTest)
}

func TestDecodePreservesUnknownFields(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)

	vpg := doc.Vpgs[0]
	assert.Contains(t, vpg.Extra, "Journal")
	assert.Contains(t, vpg.Basic.Extra, "Priority")

	hv := vpg.Vms[0].Nics[0].Failover.Hypervisor
	assert.Equal(t, "corp.local", hv.Extra["DnsSuffix"])

	// Unknown fields survive re-serialization
	out, err := json.Marshal(vpg)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Journal"`)
	assert.Contains(t, string(out), `"Priority":"Medium"`)
	assert.Contains(t, string(out), `"DnsSuffix":"corp.local"`)
}

func TestDecodeRoundTrip(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)

	doc2, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, doc.Equal(doc2))
}

func TestDecodeYAML(t *testing.T) {
	input := `
ExportedVpgSettingsApi:
  - Basic:
      Name: VpgYaml
    Vms:
      - VmIdentifier: vm-7
        Nics:
          - NicIdentifier: nic-0
            Failover:
              Hypervisor:
                NetworkIdentifier: net-a
                ShouldReplaceIpConfiguration: true
                IpConfig:
                  IsDhcp: true
                  StaticIp: null
                  SubnetMask: null
                  Gateway: null
                  PrimaryDns: null
                  SecondaryDns: null
`
	doc, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Vpgs, 1)
	assert.Equal(t, "VpgYaml", doc.Vpgs[0].Name())
	hv := doc.Vpgs[0].Vms[0].Nics[0].Failover.Backend()
	require.NotNil(t, hv)
	assert.True(t, hv.IpConfig.IsDhcp)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage", `{{{`},
		{"missing name", `{"ExportedVpgSettingsApi":[{"Basic":{},"Vms":[]}]}`},
		{"missing basic", `{"ExportedVpgSettingsApi":[{"Vms":[]}]}`},
		{
			"duplicate vpg name",
			`{"ExportedVpgSettingsApi":[{"Basic":{"Name":"A"},"Vms":[]},{"Basic":{"Name":"A"},"Vms":[]}]}`,
		},
		{
			"duplicate vm identifier",
			`{"ExportedVpgSettingsApi":[{"Basic":{"Name":"A"},"Vms":[{"VmIdentifier":"vm-1","Nics":[]},{"VmIdentifier":"vm-1","Nics":[]}]}]}`,
		},
		{
			"duplicate nic identifier",
			`{"ExportedVpgSettingsApi":[{"Basic":{"Name":"A"},"Vms":[{"VmIdentifier":"vm-1","Nics":[{"NicIdentifier":"n"},{"NicIdentifier":"n"}]}]}]}`,
		},
		{
			"empty vm identifier",
			`{"ExportedVpgSettingsApi":[{"Basic":{"Name":"A"},"Vms":[{"VmIdentifier":"","Nics":[]}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, vpgerrors.ErrInput), "expected input error, got %v", err)
		})
	}
}

func TestClone(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)

	clone := doc.Clone()
	require.True(t, doc.Equal(clone))

	// Mutating the clone must not touch the original
	hv := clone.Vpgs[0].Vms[0].Nics[0].Failover.Hypervisor
	ip := "10.9.9.9"
	hv.IpConfig.StaticIp = &ip
	hv.Extra["DnsSuffix"] = "changed.local"

	orig := doc.Vpgs[0].Vms[0].Nics[0].Failover.Hypervisor
	assert.Equal(t, "10.0.0.5", *orig.IpConfig.StaticIp)
	assert.Equal(t, "corp.local", orig.Extra["DnsSuffix"])
	assert.False(t, doc.Equal(clone))
}

func TestCloneNil(t *testing.T) {
	var doc *ExportedSettings
	assert.Nil(t, doc.Clone())

	var role *NicRole
	assert.Nil(t, role.Clone())
	assert.Nil(t, role.Backend())
}

func TestEqual(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)

	other := doc.Clone()
	assert.True(t, doc.Equal(other))

	other.Vpgs[0].Basic.Name = "Renamed"
	assert.False(t, doc.Equal(other))
}

func TestFindHelpers(t *testing.T) {
	doc, err := Decode([]byte(sampleExportJSON))
	require.NoError(t, err)

	vpg := doc.FindVpg("VpgTest1")
	require.NotNil(t, vpg)
	assert.Nil(t, doc.FindVpg("missing"))

	vm := vpg.FindVM("vm-100")
	require.NotNil(t, vm)
	assert.Nil(t, vpg.FindVM("vm-999"))

	nic := vm.FindNic("nic-1")
	require.NotNil(t, nic)
	assert.Nil(t, vm.FindNic("nic-9"))
}

func TestDecodeVpg(t *testing.T) {
	input := `{"Basic":{"Name":"Solo"},"Vms":[{"VmIdentifier":"vm-1","Nics":[{"NicIdentifier":"nic-0"}]}]}`
	vpg, err := DecodeVpg([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, "Solo", vpg.Name())

	_, err = DecodeVpg([]byte(`{"Vms":[]}`))
	assert.True(t, errors.Is(err, vpgerrors.ErrInput))
}

func TestClearStaticFields(t *testing.T) {
	ip := "10.0.0.5"
	cfg := &IPConfig{IsDhcp: true, StaticIp: &ip, SubnetMask: &ip, Gateway: &ip, PrimaryDns: &ip, SecondaryDns: &ip}
	cfg.ClearStaticFields()
	assert.Nil(t, cfg.StaticIp)
	assert.Nil(t, cfg.SubnetMask)
	assert.Nil(t, cfg.Gateway)
	assert.Nil(t, cfg.PrimaryDns)
	assert.Nil(t, cfg.SecondaryDns)
	assert.True(t, cfg.IsDhcp)
}
