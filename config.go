package mailverify

import (
	"log/slog"

	"github.com/synqronlabs/mailverify/dns"
)

// InconclusivePolicy decides the verdict of a deep verification that
// probed every exchanger without a definitive answer.
type InconclusivePolicy int

const (
	// InconclusiveValid accepts the address: its domain has mail
	// exchangers and none of them rejected the recipient.
	InconclusiveValid InconclusivePolicy = iota
	// InconclusiveInvalid rejects the address.
	InconclusiveInvalid
)

func (p InconclusivePolicy) String() string {
	if p == InconclusiveInvalid {
		return "invalid"
	}
	return "valid"
}

// Config contains configuration options for a Validator.
//
// Resolver doubles as the DNS capability flag: with a nil Resolver every
// MX check fails with ErrResolutionUnavailable. Syntax-only validation
// never needs it.
type Config struct {
	// Resolver looks up mail exchangers. Nil disables MX checks.
	Resolver dns.Resolver

	// Prober probes mail exchangers. Nil uses an SMTPProber with
	// DefaultProberConfig.
	Prober Prober

	// Logger receives check progress. Default: slog.Default()
	Logger *slog.Logger

	// InconclusivePolicy applies when verify finds no definitive answer.
	// Default: InconclusiveValid
	InconclusivePolicy InconclusivePolicy

	// MaxHosts bounds how many exchangers are probed per check.
	// Default: 0 (all)
	MaxHosts int
}

// DefaultConfig returns a Config that resolves through the system name
// servers and probes exchangers on port 25.
func DefaultConfig() Config {
	resolverConfig := dns.DefaultResolverConfig()
	return Config{
		Resolver: dns.NewResolver(resolverConfig),
		Logger:   slog.Default(),
	}
}
