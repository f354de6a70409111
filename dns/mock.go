package dns

import (
	"context"
	"slices"
)

// MockResolver is a Resolver used for testing. MX maps FQDNs (with
// trailing dot) to their records, which may be given in any order.
type MockResolver struct {
	MX map[string][]MXRecord

	// Fail lists FQDNs whose lookup fails with a temporary error (SERVFAIL).
	Fail []string

	// Unavailable makes every lookup fail as if no name server existed.
	Unavailable bool

	// AllAuthentic sets Authentic on every successful answer.
	AllAuthentic bool
}

var _ Resolver = MockResolver{}

// ensureFQDN ensures the name ends with a dot.
func ensureFQDN(name string) string {
	if len(name) == 0 || name[len(name)-1] != '.' {
		return name + "."
	}
	return name
}

// LookupMX returns the configured MX records for the given domain.
func (r MockResolver) LookupMX(ctx context.Context, domain string) (Result[MXRecord], error) {
	if err := ctx.Err(); err != nil {
		return Result[MXRecord]{}, err
	}
	if r.Unavailable {
		return Result[MXRecord]{}, ErrNoNameServers
	}

	fqdn := ensureFQDN(domain)
	if slices.Contains(r.Fail, fqdn) {
		return Result[MXRecord]{}, ErrDNSServFail
	}

	records, err := normalize(slices.Clone(r.MX[fqdn]))
	if err != nil {
		return Result[MXRecord]{}, err
	}
	return Result[MXRecord]{Records: records, Authentic: r.AllAuthentic}, nil
}
