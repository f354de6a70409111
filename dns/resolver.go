package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	mdns "github.com/miekg/dns"
)

// MXRecord is one mail exchanger of a domain. Lower Priority values are
// preferred. Host carries no trailing dot.
type MXRecord struct {
	Host     string `json:"host"`
	Priority uint16 `json:"priority"`
}

// Result holds the records of a lookup.
type Result[T any] struct {
	Records []T

	// Authentic indicates the answer was DNSSEC-validated by the upstream
	// resolver. Only DNSResolver with DNSSEC enabled can set it.
	Authentic bool
}

// Resolver looks up the mail exchangers of a domain. Implementations
// return records sorted by ascending priority, ErrDNSNotFound when the
// domain has none, and ErrNoNameServers when no lookup could be made.
type Resolver interface {
	LookupMX(ctx context.Context, domain string) (Result[MXRecord], error)
}

// ResolverConfig contains configuration for the DNS resolver.
type ResolverConfig struct {
	// Nameservers is a list of DNS servers to query (e.g., "8.8.8.8:53").
	// If empty, servers are discovered from ResolvConf.
	Nameservers []string

	// ResolvConf is the resolver configuration file used for discovery.
	// Default: /etc/resolv.conf
	ResolvConf string

	// Fallback servers are used when neither Nameservers nor discovery
	// yield any server. Leave empty to fail with ErrNoNameServers instead.
	Fallback []string

	// DNSSEC sets the DO bit on queries. When the upstream resolver
	// validates, the Authentic field in Result reports it.
	DNSSEC bool

	// Timeout bounds each individual query. Default: 5 seconds.
	Timeout time.Duration

	// Retries is the number of extra passes over the name servers after
	// the first one fails. Default: 0.
	Retries int
}

// DefaultResolverConfig returns a configuration that discovers system
// name servers and falls back to public resolvers.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		ResolvConf: DefaultResolvConf,
		Fallback:   []string{"8.8.8.8:53", "1.1.1.1:53"},
		Timeout:    5 * time.Second,
	}
}

// DNSResolver implements Resolver using github.com/miekg/dns.
type DNSResolver struct {
	config ResolverConfig
	udp    *mdns.Client
	tcp    *mdns.Client
}

var _ Resolver = (*DNSResolver)(nil)

// NewResolver creates a resolver. When config.Nameservers is empty the
// name servers are discovered once, here.
func NewResolver(config ResolverConfig) *DNSResolver {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.ResolvConf == "" {
		config.ResolvConf = DefaultResolvConf
	}
	if len(config.Nameservers) == 0 {
		servers, err := DiscoverNameServers(config.ResolvConf)
		if err != nil || len(servers) == 0 {
			servers = config.Fallback
		}
		config.Nameservers = servers
	}

	return &DNSResolver{
		config: config,
		udp:    &mdns.Client{Timeout: config.Timeout},
		tcp:    &mdns.Client{Net: "tcp", Timeout: config.Timeout},
	}
}

// query sends one question to the configured servers in order until one
// of them gives a usable answer.
func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) (*mdns.Msg, bool, error) {
	if len(r.config.Nameservers) == 0 {
		return nil, false, ErrNoNameServers
	}

	m := new(mdns.Msg)
	m.SetQuestion(mdns.Fqdn(name), qtype)
	m.RecursionDesired = true
	if r.config.DNSSEC {
		m.SetEdns0(4096, true)
	}

	var lastErr error
	for i := 0; i <= r.config.Retries; i++ {
		for _, server := range r.config.Nameservers {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}

			resp, _, err := r.udp.ExchangeContext(ctx, m, server)
			if err == nil && resp.Truncated {
				resp, _, err = r.tcp.ExchangeContext(ctx, m, server)
			}
			if err != nil {
				if ctx.Err() != nil {
					return nil, false, ctx.Err()
				}
				lastErr = convertExchangeError(err)
				continue
			}

			authentic := r.config.DNSSEC && resp.AuthenticatedData

			switch resp.Rcode {
			case mdns.RcodeSuccess:
				return resp, authentic, nil
			case mdns.RcodeNameError:
				return nil, authentic, ErrDNSNotFound
			case mdns.RcodeServerFailure:
				if r.config.DNSSEC {
					lastErr = ErrDNSBogus
				} else {
					lastErr = ErrDNSServFail
				}
			case mdns.RcodeRefused:
				lastErr = ErrDNSRefused
			default:
				lastErr = fmt.Errorf("dns: unexpected rcode %s", mdns.RcodeToString[resp.Rcode])
			}
		}
	}
	return nil, false, lastErr
}

// convertExchangeError maps transport errors from the client.
func convertExchangeError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrDNSTimeout, err)
	}
	return fmt.Errorf("dns query failed: %w", err)
}

// LookupMX retrieves the MX records of domain sorted by priority.
func (r *DNSResolver) LookupMX(ctx context.Context, domain string) (Result[MXRecord], error) {
	resp, authentic, err := r.query(ctx, domain, mdns.TypeMX)
	if err != nil {
		return Result[MXRecord]{Authentic: authentic}, err
	}

	var records []MXRecord
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, MXRecord{Host: mx.Mx, Priority: mx.Preference})
		}
	}

	records, err = normalize(records)
	return Result[MXRecord]{Records: records, Authentic: authentic}, err
}

// Config returns the resolver's effective configuration, including the
// name servers chosen at construction.
func (r *DNSResolver) Config() ResolverConfig {
	return r.config
}
