package mailverify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/synqronlabs/mailverify/dns"
	"github.com/synqronlabs/mailverify/grammar"
	"github.com/synqronlabs/mailverify/utils"
)

// Validator checks addresses at three depths: syntax only, syntax plus
// MX lookup, and syntax plus MX lookup plus an SMTP recipient probe.
// A Validator is safe for concurrent use.
type Validator struct {
	resolver dns.Resolver
	prober   Prober
	logger   *slog.Logger
	policy   InconclusivePolicy
	maxHosts int
}

// NewValidator creates a validator from config.
func NewValidator(config Config) (*Validator, error) {
	prober := config.Prober
	if prober == nil {
		p, err := NewProber(DefaultProberConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create prober: %w", err)
		}
		prober = p
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxHosts < 0 {
		return nil, fmt.Errorf("mailverify: negative MaxHosts %d", config.MaxHosts)
	}

	return &Validator{
		resolver: config.Resolver,
		prober:   prober,
		logger:   logger,
		policy:   config.InconclusivePolicy,
		maxHosts: config.MaxHosts,
	}, nil
}

// IsSyntacticallyValid reports whether address is an RFC 2822 addr-spec.
// It performs no I/O.
func IsSyntacticallyValid(address string) bool {
	return grammar.IsValid(address)
}

// Validate reports whether address is valid at the requested depth. See
// Check for the meaning of checkMX and verify.
func (v *Validator) Validate(ctx context.Context, address string, checkMX, verify bool) (bool, error) {
	report, err := v.Check(ctx, address, checkMX, verify)
	if err != nil {
		return false, err
	}
	return report.Valid, nil
}

// Check validates address and returns the full trace.
//
// Syntax is always checked, and an invalid address is rejected without
// any network I/O. With checkMX the domain must have mail exchangers.
// With verify (which implies checkMX) the exchangers are probed in
// priority order until one accepts or rejects the recipient.
//
// The returned error is non-nil only when the check could not be carried
// out: ErrResolutionUnavailable when no DNS capability exists, or the
// context's error on cancellation. The report is returned in both cases.
func (v *Validator) Check(ctx context.Context, address string, checkMX, verify bool) (*Report, error) {
	checkMX = checkMX || verify

	report := &Report{
		ID:      utils.GenerateID(),
		Address: address,
		CheckMX: checkMX,
		Verify:  verify,
		Started: time.Now(),
	}
	defer func() { report.Duration = time.Since(report.Started) }()

	logger := v.logger.With(slog.String("check_id", report.ID), slog.String("address", address))

	addr, err := grammar.Parse(address)
	if err != nil {
		logger.Debug("address rejected", slog.String("reason", string(ReasonSyntaxInvalid)))
		return report.conclude(false, ReasonSyntaxInvalid), nil
	}
	report.Syntax = true
	report.LocalPart = addr.LocalPart
	if addr.IsDomainLiteral() {
		report.Domain = addr.Literal()
	} else {
		report.Domain = addr.Host()
		report.OrgDomain = orgDomain(report.Domain)
	}

	if !checkMX {
		return report.conclude(true, ReasonSyntaxValid), nil
	}

	if v.resolver == nil {
		report.conclude(false, ReasonResolutionFailed)
		return report, ErrResolutionUnavailable
	}
	if addr.IsDomainLiteral() {
		logger.Debug("address rejected", slog.String("reason", string(ReasonDomainLiteral)))
		return report.conclude(false, ReasonDomainLiteral), nil
	}

	result, err := v.resolver.LookupMX(ctx, report.Domain)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			report.conclude(false, ReasonCanceled)
			return report, ctxErr
		}
		if dns.IsUnavailable(err) {
			report.conclude(false, ReasonResolutionFailed)
			return report, fmt.Errorf("%w: %w", ErrResolutionUnavailable, err)
		}

		reason := ReasonLookupFailed
		switch {
		case errors.Is(err, dns.ErrNullMX):
			reason = ReasonNullMX
		case dns.IsNotFound(err):
			reason = ReasonNoMX
		}
		logger.Info("address rejected",
			slog.String("domain", report.Domain),
			slog.String("reason", string(reason)),
			slog.Any("error", err),
		)
		return report.conclude(false, reason), nil
	}

	report.Authentic = result.Authentic
	for _, mx := range result.Records {
		report.Exchangers = append(report.Exchangers, Exchanger{Host: mx.Host, Priority: mx.Priority})
	}

	hosts := result.Records
	if v.maxHosts > 0 && len(hosts) > v.maxHosts {
		hosts = hosts[:v.maxHosts]
	}

	mailbox := addr.Mailbox()
	for _, mx := range hosts {
		if err := ctx.Err(); err != nil {
			report.conclude(false, ReasonCanceled)
			return report, err
		}

		res := v.prober.Probe(ctx, mx.Host, mailbox, verify)
		report.Attempts = append(report.Attempts, newAttempt(res))

		if err := ctx.Err(); err != nil {
			report.conclude(false, ReasonCanceled)
			return report, err
		}

		logger.Debug("exchanger probed",
			slog.String("host", mx.Host),
			slog.Int("priority", int(mx.Priority)),
			slog.String("outcome", res.Outcome.String()),
			slog.Int("code", res.Code),
			slog.Duration("duration", res.Duration),
		)

		switch res.Class() {
		case ClassPositive:
			reason := ReasonConnected
			if res.Outcome == OutcomeRecipientAccepted {
				reason = ReasonRecipientAccepted
			}
			logger.Info("address accepted", slog.String("host", mx.Host), slog.String("reason", string(reason)))
			return report.conclude(true, reason), nil
		case ClassNegative:
			logger.Info("address rejected",
				slog.String("host", mx.Host),
				slog.String("reason", string(ReasonRecipientRejected)),
				slog.Int("code", res.Code),
			)
			return report.conclude(false, ReasonRecipientRejected), nil
		}
	}

	valid := !verify || v.policy == InconclusiveValid
	logger.Info("no definitive answer",
		slog.Int("attempts", len(report.Attempts)),
		slog.Bool("valid", valid),
	)
	return report.conclude(valid, ReasonExhausted), nil
}

func (r *Report) conclude(valid bool, reason Reason) *Report {
	r.Valid = valid
	r.Reason = reason
	return r
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Validate checks address with a validator built from DefaultConfig on
// first use. See (*Validator).Check for the meaning of the flags.
func Validate(address string, checkMX, verify bool) (bool, error) {
	if !checkMX && !verify {
		return IsSyntacticallyValid(address), nil
	}
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator(DefaultConfig())
	})
	if defaultErr != nil {
		return false, defaultErr
	}
	return defaultValidator.Validate(context.Background(), address, checkMX, verify)
}
