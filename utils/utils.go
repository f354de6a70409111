package utils

import (
	"fmt"
	"net"
	"net/netip"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
)

// IPFromAddr extracts the IP address of a connection endpoint.
// Addresses that are not TCP, UDP or IP addresses are parsed from their
// string form, with or without a port.
func IPFromAddr(addr net.Addr) (net.IP, error) {
	if addr == nil {
		return nil, fmt.Errorf("address is nil")
	}

	switch a := addr.(type) {
	case *net.TCPAddr:
		return a.IP, nil
	case *net.UDPAddr:
		return a.IP, nil
	case *net.IPAddr:
		return a.IP, nil
	}

	s := addr.String()
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return net.IP(ap.Addr().AsSlice()), nil
	}
	if ip := net.ParseIP(s); ip != nil {
		return ip, nil
	}
	return nil, fmt.Errorf("unable to extract IP from address: %v", addr)
}

// ContainsNonASCII reports whether s holds any byte outside US-ASCII.
// Addresses are checked with it before grammar matching, since
// internationalized forms are not accepted.
func ContainsNonASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// GenerateID returns a new lexicographically sortable identifier (ULID).
func GenerateID() string {
	return ulid.Make().String()
}
