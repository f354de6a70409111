// Package dns resolves the mail exchangers of a domain.
//
// Three resolvers are provided: DNSResolver queries name servers directly
// with github.com/miekg/dns, StdResolver uses the standard library, and
// MockResolver serves fixed records for tests.
package dns

import (
	"cmp"
	"fmt"
	"net"
	"slices"
	"strings"

	mdns "github.com/miekg/dns"
)

// DefaultResolvConf is where name servers are discovered by default.
const DefaultResolvConf = "/etc/resolv.conf"

// DiscoverNameServers reads the name servers listed in a resolv.conf
// style file and returns them as host:port addresses.
func DiscoverNameServers(path string) ([]string, error) {
	config, err := mdns.ClientConfigFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read DNS config: %w", err)
	}
	if len(config.Servers) == 0 {
		return nil, ErrNoNameServers
	}

	port := config.Port
	if port == "" {
		port = "53"
	}
	servers := make([]string, 0, len(config.Servers))
	for _, s := range config.Servers {
		servers = append(servers, net.JoinHostPort(s, port))
	}
	return servers, nil
}

// SortByPriority orders records by ascending priority. Records with
// equal priority keep their relative order.
func SortByPriority(records []MXRecord) {
	slices.SortStableFunc(records, func(a, b MXRecord) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
}

// normalize strips trailing dots, detects a null MX and sorts.
func normalize(records []MXRecord) ([]MXRecord, error) {
	if len(records) == 0 {
		return nil, ErrDNSNotFound
	}
	if len(records) == 1 && (records[0].Host == "." || records[0].Host == "") {
		return nil, ErrNullMX
	}

	out := make([]MXRecord, 0, len(records))
	for _, mx := range records {
		host := strings.TrimSuffix(mx.Host, ".")
		if host == "" {
			continue
		}
		out = append(out, MXRecord{Host: host, Priority: mx.Priority})
	}
	if len(out) == 0 {
		return nil, ErrNullMX
	}
	SortByPriority(out)
	return out, nil
}
