package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADOM(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"root", "root", false},
		{"Production_ADOM-1", "Production_ADOM-1", false},
		{"  root  ", "root", false},
		{"", "", true},
		{"bad adom", "", true},
		{"adom/with/slash", "", true},
	}

	for _, tt := range tests {
		got, err := ADOM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDeviceName(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"fw-branch-01", false},
		{"fw.site.01", false},
		{"fw-branch-01[customer_a]", false},
		{"", true},
		{"fw branch", true},
		{"fw[bad vdom]", true},
	}

	for _, tt := range tests {
		_, err := DeviceName(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
		}
	}
}

func TestDeviceSerial(t *testing.T) {
	got, err := DeviceSerial("fgt60fABCD123456")
	require.NoError(t, err)
	assert.Equal(t, "FGT60FABCD123456", got, "serial is uppercased")

	for _, bad := range []string{"", "XX1234567890", "FG123", "FG-1234567890"} {
		_, err := DeviceSerial(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestIPv4Address(t *testing.T) {
	for _, good := range []string{"10.0.0.1", "255.255.255.255", "0.0.0.0", "192.168.1.254"} {
		_, err := IPv4Address(good)
		assert.NoError(t, err, good)
	}
	for _, bad := range []string{"", "256.1.1.1", "10.0.0", "10.0.0.1.5", "a.b.c.d"} {
		_, err := IPv4Address(bad)
		assert.Error(t, err, bad)
	}
}

func TestIPv4Subnet(t *testing.T) {
	for _, good := range []string{"10.0.0.0/24", "192.168.0.0/16", "10.1.2.3/32", "10.0.0.0 255.255.255.0"} {
		_, err := IPv4Subnet(good)
		assert.NoError(t, err, good)
	}
	for _, bad := range []string{"", "10.0.0.0/33", "10.0.0.0/", "10.0.0.0 255.255.255.0 extra", "10.0.0.0 badmask"} {
		_, err := IPv4Subnet(bad)
		assert.Error(t, err, bad)
	}
}

func TestFQDN(t *testing.T) {
	got, err := FQDN("WWW.Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", got)

	for _, bad := range []string{"", "nodots", "-bad.example.com", "example..com"} {
		_, err := FQDN(bad)
		assert.Error(t, err, bad)
	}
}

func TestPortRange(t *testing.T) {
	for _, good := range []string{"80", "8080-8090", "80 443 8080", "1-65535"} {
		_, err := PortRange(good)
		assert.NoError(t, err, good)
	}

	tests := []string{"", "0", "70000", "9000-8000", "80-", "abc", "80,443"}
	for _, bad := range tests {
		_, err := PortRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestEnumValidators(t *testing.T) {
	got, err := PolicyAction("ACCEPT")
	require.NoError(t, err)
	assert.Equal(t, "accept", got, "enums are lowercased")

	_, err = PolicyAction("drop")
	assert.Error(t, err)

	_, err = LogTrafficMode("utm")
	assert.NoError(t, err)
	_, err = LogTrafficMode("some")
	assert.Error(t, err)

	_, err = Status("enable")
	assert.NoError(t, err)
	_, err = Status("on")
	assert.Error(t, err)

	_, err = AddressType("ipmask")
	assert.NoError(t, err)
	_, err = AddressType("subnet")
	assert.Error(t, err)

	_, err = MovePosition("before")
	assert.NoError(t, err)
	_, err = MovePosition("above")
	assert.Error(t, err)
}

func TestEnumErrorListsValidValuesSorted(t *testing.T) {
	_, err := Status("on")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disable, enable")

	_, err = MovePosition("above")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after, before")
}

func TestPolicyID(t *testing.T) {
	got, err := PolicyID(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = PolicyID(-1)
	assert.Error(t, err)
}

func TestObjectName(t *testing.T) {
	_, err := ObjectName("web servers group.1", "address")
	assert.NoError(t, err)

	_, err = ObjectName("", "address")
	assert.Error(t, err)

	_, err = ObjectName("bad/name", "service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service", "error names the object type")
}

func TestValidationErrorType(t *testing.T) {
	_, err := ADOM("")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
