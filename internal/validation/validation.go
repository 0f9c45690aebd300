// Package validation provides input validation for FortiManager-facing
// parameters (ADOM, device, policy and object names, addresses, ports)
// plus log sanitization for credential-bearing payloads.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ADOM name: alphanumeric, underscore, hyphen, 1-64 chars
	adomPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

	// Device name: alphanumeric, underscore, hyphen, dot, 1-64 chars
	deviceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,64}$`)

	// Device serial: device type prefix followed by alphanumerics
	deviceSerialPattern = regexp.MustCompile(`^(FG|FM|FW|FA|FS|FD|FP|FC|FV)[A-Z0-9]{10,20}$`)

	// Object names allow up to 79 chars including dot and space
	objectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_. -]{1,79}$`)

	// Package name: alphanumeric, underscore, hyphen, 1-35 chars
	packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,35}$`)

	// Policy name: alphanumeric, underscore, hyphen, dot, space, 1-35 chars
	policyNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_. -]{1,35}$`)

	// Interface name: alphanumeric, underscore, hyphen, 1-35 chars
	interfaceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,35}$`)

	fqdnPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

	ipv4Pattern = regexp.MustCompile(
		`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}` +
			`(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

	ipv4CIDRPattern = regexp.MustCompile(
		`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}` +
			`(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)/(?:[0-9]|[1-2][0-9]|3[0-2])$`)

	// Single port, range, or space-separated combination of both
	portRangePattern = regexp.MustCompile(`^(\d{1,5}(-\d{1,5})?(\s+\d{1,5}(-\d{1,5})?)*)$`)
)

var (
	validPolicyActions   = map[string]bool{"accept": true, "deny": true, "ipsec": true, "ssl-vpn": true}
	validLogTrafficModes = map[string]bool{"all": true, "utm": true, "disable": true}
	validStatuses        = map[string]bool{"enable": true, "disable": true}
	validAddressTypes    = map[string]bool{"ipmask": true, "fqdn": true, "iprange": true, "wildcard": true, "geography": true, "mac": true}
	validMovePositions   = map[string]bool{"before": true, "after": true}
)

// ValidationError indicates an input parameter failed format checks.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ADOM validates an ADOM name and returns the trimmed value.
func ADOM(adom string) (string, error) {
	if adom == "" {
		return "", invalid("ADOM name cannot be empty")
	}
	adom = strings.TrimSpace(adom)
	if !adomPattern.MatchString(adom) {
		return "", invalid("invalid ADOM name %q: must be 1-64 characters, alphanumeric, underscore, or hyphen only", adom)
	}
	return adom, nil
}

// DeviceName validates a device name, allowing the name[vdom] form.
func DeviceName(device string) (string, error) {
	if device == "" {
		return "", invalid("device name cannot be empty")
	}
	device = strings.TrimSpace(device)

	if idx := strings.Index(device, "["); idx >= 0 {
		base := device[:idx]
		vdom := strings.TrimSuffix(device[idx+1:], "]")
		if !deviceNamePattern.MatchString(base) {
			return "", invalid("invalid device name %q", base)
		}
		if !adomPattern.MatchString(vdom) {
			return "", invalid("invalid VDOM name %q", vdom)
		}
		return device, nil
	}

	if !deviceNamePattern.MatchString(device) {
		return "", invalid("invalid device name %q: must be 1-64 characters, alphanumeric, underscore, hyphen, or dot", device)
	}
	return device, nil
}

// DeviceSerial validates a serial number and returns it uppercased.
func DeviceSerial(serial string) (string, error) {
	if serial == "" {
		return "", invalid("serial number cannot be empty")
	}
	serial = strings.ToUpper(strings.TrimSpace(serial))
	if !deviceSerialPattern.MatchString(serial) {
		return "", invalid("invalid serial number %q: must start with a device type prefix (FG, FM, ...) followed by 10-20 alphanumeric characters", serial)
	}
	return serial, nil
}

// PackageName validates a policy package name.
func PackageName(name string) (string, error) {
	if name == "" {
		return "", invalid("package name cannot be empty")
	}
	name = strings.TrimSpace(name)
	if !packageNamePattern.MatchString(name) {
		return "", invalid("invalid package name %q: must be 1-35 characters, alphanumeric, underscore, or hyphen only", name)
	}
	return name, nil
}

// PolicyName validates a firewall policy name.
func PolicyName(name string) (string, error) {
	if name == "" {
		return "", invalid("policy name cannot be empty")
	}
	name = strings.TrimSpace(name)
	if !policyNamePattern.MatchString(name) {
		return "", invalid("invalid policy name %q: must be 1-35 characters, alphanumeric, underscore, hyphen, dot, or space", name)
	}
	return name, nil
}

// ObjectName validates a firewall object name. objectType is used only
// in error messages ("address", "service", ...).
func ObjectName(name, objectType string) (string, error) {
	if name == "" {
		return "", invalid("%s name cannot be empty", objectType)
	}
	name = strings.TrimSpace(name)
	if !objectNamePattern.MatchString(name) {
		return "", invalid("invalid %s name %q: must be 1-79 characters, alphanumeric, underscore, hyphen, dot, or space", objectType, name)
	}
	return name, nil
}

// InterfaceName validates an interface name.
func InterfaceName(name string) (string, error) {
	if name == "" {
		return "", invalid("interface name cannot be empty")
	}
	name = strings.TrimSpace(name)
	if !interfaceNamePattern.MatchString(name) {
		return "", invalid("invalid interface name %q: must be 1-35 characters, alphanumeric, underscore, or hyphen", name)
	}
	return name, nil
}

// IPv4Address validates a dotted-quad IPv4 address.
func IPv4Address(ip string) (string, error) {
	if ip == "" {
		return "", invalid("IP address cannot be empty")
	}
	ip = strings.TrimSpace(ip)
	if !ipv4Pattern.MatchString(ip) {
		return "", invalid("invalid IPv4 address %q", ip)
	}
	return ip, nil
}

// IPv4Subnet validates a subnet in CIDR or "IP netmask" form.
func IPv4Subnet(subnet string) (string, error) {
	if subnet == "" {
		return "", invalid("subnet cannot be empty")
	}
	subnet = strings.TrimSpace(subnet)

	if strings.Contains(subnet, " ") {
		parts := strings.Fields(subnet)
		if len(parts) != 2 {
			return "", invalid("invalid subnet format %q", subnet)
		}
		if !ipv4Pattern.MatchString(parts[0]) || !ipv4Pattern.MatchString(parts[1]) {
			return "", invalid("invalid subnet %q", subnet)
		}
		return subnet, nil
	}

	if !ipv4CIDRPattern.MatchString(subnet) {
		return "", invalid("invalid subnet %q: use CIDR format (e.g. 10.0.0.0/24) or 'IP netmask' format", subnet)
	}
	return subnet, nil
}

// FQDN validates a domain name and returns it lowercased.
func FQDN(fqdn string) (string, error) {
	if fqdn == "" {
		return "", invalid("FQDN cannot be empty")
	}
	fqdn = strings.ToLower(strings.TrimSpace(fqdn))
	if !fqdnPattern.MatchString(fqdn) {
		return "", invalid("invalid FQDN %q", fqdn)
	}
	return fqdn, nil
}

// PortRange validates "80", "8080-8090" or space-separated combinations.
func PortRange(portRange string) (string, error) {
	if portRange == "" {
		return "", invalid("port range cannot be empty")
	}
	portRange = strings.TrimSpace(portRange)
	if !portRangePattern.MatchString(portRange) {
		return "", invalid("invalid port range %q: use formats like '80', '8080-8090', or '80 443 8080'", portRange)
	}

	for _, part := range strings.Fields(portRange) {
		if start, end, found := strings.Cut(part, "-"); found {
			s, e := atoiPort(start), atoiPort(end)
			if s == 0 || e == 0 {
				return "", invalid("port values must be between 1 and 65535")
			}
			if s > e {
				return "", invalid("start port must be less than end port")
			}
		} else if atoiPort(part) == 0 {
			return "", invalid("port value must be between 1 and 65535")
		}
	}
	return portRange, nil
}

// atoiPort parses a port number, returning 0 when out of range.
func atoiPort(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
		if n > 65535 {
			return 0
		}
	}
	if n < 1 {
		return 0
	}
	return n
}

func enumValue(value, label string, valid map[string]bool) (string, error) {
	if value == "" {
		return "", invalid("%s cannot be empty", label)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if !valid[value] {
		keys := make([]string, 0, len(valid))
		for k := range valid {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", invalid("invalid %s %q: valid values: %s", label, value, strings.Join(keys, ", "))
	}
	return value, nil
}

// PolicyAction validates a firewall policy action.
func PolicyAction(action string) (string, error) {
	return enumValue(action, "policy action", validPolicyActions)
}

// LogTrafficMode validates a log traffic mode.
func LogTrafficMode(mode string) (string, error) {
	return enumValue(mode, "log traffic mode", validLogTrafficModes)
}

// Status validates an enable/disable status value.
func Status(status string) (string, error) {
	return enumValue(status, "status", validStatuses)
}

// AddressType validates an address object type.
func AddressType(addrType string) (string, error) {
	return enumValue(addrType, "address type", validAddressTypes)
}

// MovePosition validates a policy move position.
func MovePosition(position string) (string, error) {
	return enumValue(position, "move position", validMovePositions)
}

// PolicyID validates a firewall policy identifier.
func PolicyID(policyID int) (int, error) {
	if policyID < 0 {
		return 0, invalid("policy ID must be non-negative")
	}
	return policyID, nil
}
