package mailverify

import (
	"encoding/json"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Reason explains the verdict of a check.
type Reason string

const (
	ReasonSyntaxInvalid     Reason = "syntax_invalid"
	ReasonSyntaxValid       Reason = "syntax_valid"
	ReasonDomainLiteral     Reason = "domain_literal"
	ReasonNoMX              Reason = "no_mx"
	ReasonNullMX            Reason = "null_mx"
	ReasonLookupFailed      Reason = "lookup_failed"
	ReasonResolutionFailed  Reason = "resolution_unavailable"
	ReasonConnected         Reason = "connected"
	ReasonRecipientAccepted Reason = "recipient_accepted"
	ReasonRecipientRejected Reason = "recipient_rejected"
	ReasonExhausted         Reason = "no_definitive_answer"
	ReasonCanceled          Reason = "canceled"
)

// Exchanger is one mail exchanger of the checked domain.
type Exchanger struct {
	Host     string `json:"host" msg:"host"`
	Priority uint16 `json:"priority" msg:"priority"`
}

// Attempt records the probe of one exchanger.
type Attempt struct {
	Host     string        `json:"host" msg:"host"`
	IP       string        `json:"ip,omitempty" msg:"ip"`
	Outcome  string        `json:"outcome" msg:"outcome"`
	Stage    string        `json:"stage" msg:"stage"`
	Code     int           `json:"code,omitempty" msg:"code"`
	Message  string        `json:"message,omitempty" msg:"message"`
	Error    string        `json:"error,omitempty" msg:"error"`
	Duration time.Duration `json:"duration" msg:"duration"`
}

// Report is the trace of one check: what was parsed, resolved and
// probed, and the resulting verdict.
type Report struct {
	// ID is a ULID identifying the check in logs.
	ID      string `json:"id" msg:"id"`
	Address string `json:"address" msg:"address"`

	CheckMX bool `json:"check_mx" msg:"check_mx"`
	Verify  bool `json:"verify" msg:"verify"`

	// Syntax reports whether the address matched addr-spec.
	Syntax    bool   `json:"syntax" msg:"syntax"`
	LocalPart string `json:"local_part,omitempty" msg:"local_part"`
	// Domain is the host name, or the content of a domain literal.
	Domain string `json:"domain,omitempty" msg:"domain"`
	// OrgDomain is the registrable domain of Domain (public suffix + 1).
	OrgDomain string `json:"org_domain,omitempty" msg:"org_domain"`

	Exchangers []Exchanger `json:"exchangers,omitempty" msg:"exchangers"`
	// Authentic reports a DNSSEC-validated MX answer.
	Authentic bool      `json:"authentic,omitempty" msg:"authentic"`
	Attempts  []Attempt `json:"attempts,omitempty" msg:"attempts"`

	Valid  bool   `json:"valid" msg:"valid"`
	Reason Reason `json:"reason" msg:"reason"`

	Started  time.Time     `json:"started" msg:"started"`
	Duration time.Duration `json:"duration" msg:"duration"`
}

// orgDomain returns the registrable domain of host, or "" when host is
// itself a public suffix or not a domain name.
func orgDomain(host string) string {
	org, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	return org
}

func newAttempt(res ProbeResult) Attempt {
	a := Attempt{
		Host:     res.Host,
		IP:       res.IP,
		Outcome:  res.Outcome.String(),
		Stage:    res.Stage,
		Code:     res.Code,
		Message:  res.Message,
		Duration: res.Duration,
	}
	if res.Err != nil {
		a.Error = res.Err.Error()
	}
	return a
}

// ToJSON serializes the report to JSON bytes.
func (r *Report) ToJSON() ([]byte, error) {
	return json.Marshal(r)
}

// ToJSONIndent serializes the report to pretty-printed JSON bytes.
func (r *Report) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ReportFromJSON deserializes a report from JSON bytes.
func ReportFromJSON(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ToMessagePack serializes the report to MessagePack bytes.
func (r *Report) ToMessagePack() ([]byte, error) {
	return r.MarshalMsg(nil)
}

// ReportFromMessagePack deserializes a report from MessagePack bytes.
func ReportFromMessagePack(data []byte) (*Report, error) {
	var r Report
	if _, err := r.UnmarshalMsg(data); err != nil {
		return nil, err
	}
	return &r, nil
}
