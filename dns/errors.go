package dns

import "errors"

var (
	// ErrDNSNotFound is returned for NXDOMAIN or an answer without MX
	// records. It is a negative result, not a failure of name service.
	ErrDNSNotFound = errors.New("dns: no such record")

	// ErrNullMX is returned when a domain publishes the RFC 7505 null MX
	// record, declaring that it accepts no mail.
	ErrNullMX = errors.New("dns: domain does not accept mail (null MX)")

	ErrDNSTimeout  = errors.New("dns: query timed out")
	ErrDNSServFail = errors.New("dns: server failure")
	ErrDNSRefused  = errors.New("dns: query refused")
	ErrDNSBogus    = errors.New("dns: DNSSEC validation failed")

	// ErrNoNameServers is returned when no name server is configured or
	// could be discovered, so no lookup can be attempted at all.
	ErrNoNameServers = errors.New("dns: no name servers available")
)

// IsNotFound reports whether err means the domain has no mail exchangers.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDNSNotFound) || errors.Is(err, ErrNullMX)
}

// IsTimeout reports whether err is a query timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrDNSTimeout)
}

// IsServFail reports whether err is a SERVFAIL answer.
func IsServFail(err error) bool {
	return errors.Is(err, ErrDNSServFail)
}

// IsTemporary reports whether the same query may succeed later.
func IsTemporary(err error) bool {
	return IsTimeout(err) || IsServFail(err)
}

// IsUnavailable reports whether err means name service could not be
// used at all, as opposed to a lookup that produced an answer.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNoNameServers)
}
