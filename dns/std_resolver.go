package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
)

// StdResolver implements Resolver using the standard library net package.
// It never reports Authentic answers.
type StdResolver struct {
	resolver *net.Resolver
}

var _ Resolver = (*StdResolver)(nil)

// NewStdResolver creates a resolver using the system configuration.
func NewStdResolver() *StdResolver {
	return &StdResolver{
		resolver: net.DefaultResolver,
	}
}

// NewStdResolverWithDialer creates a resolver that reaches name servers
// through dial, which lets callers pin a specific server.
func NewStdResolverWithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) *StdResolver {
	return &StdResolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial:     dial,
		},
	}
}

// NewStdResolverForServers creates a resolver that queries the given name
// servers (host:port) in order instead of the system configuration. With
// no servers it is NewStdResolver.
func NewStdResolverForServers(servers []string) *StdResolver {
	if len(servers) == 0 {
		return NewStdResolver()
	}
	servers = slices.Clone(servers)
	return NewStdResolverWithDialer(func(ctx context.Context, network, _ string) (net.Conn, error) {
		var d net.Dialer
		var errs []error
		for _, server := range servers {
			conn, err := d.DialContext(ctx, network, server)
			if err == nil {
				return conn, nil
			}
			errs = append(errs, err)
		}
		return nil, fmt.Errorf("dns: no name server reachable: %w", errors.Join(errs...))
	})
}

// LookupMX retrieves MX records using the standard library.
func (r *StdResolver) LookupMX(ctx context.Context, domain string) (Result[MXRecord], error) {
	mxs, err := r.resolver.LookupMX(ctx, strings.TrimSuffix(domain, "."))
	if err != nil && len(mxs) == 0 {
		return Result[MXRecord]{}, convertError(err)
	}

	records := make([]MXRecord, 0, len(mxs))
	for _, mx := range mxs {
		records = append(records, MXRecord{Host: mx.Host, Priority: mx.Pref})
	}
	records, err = normalize(records)
	return Result[MXRecord]{Records: records}, err
}

// convertError converts standard library DNS errors to package errors.
func convertError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return ErrDNSNotFound
		case dnsErr.IsTimeout:
			return ErrDNSTimeout
		case dnsErr.IsTemporary:
			return ErrDNSServFail
		}
	}
	return fmt.Errorf("dns lookup failed: %w", err)
}
