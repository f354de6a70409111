// Package grammar matches email addresses against the RFC 2822 addr-spec
// production (Section 3.4.1).
//
// The grammar is kept as a table of named fragments, one per RFC token.
// A fragment may reference any fragment defined before it as {NAME}; the
// reference is expanded in place as a non-capturing group. Every fragment
// is a complete regular expression on its own, so each RFC clause can be
// compiled and tested in isolation with Compile.
//
// Constructs marked obsolete in RFC 2822 are not part of the table, and
// comments do not nest: the RFC defines ccontent in terms of comment,
// which no regular expression can express.
package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/synqronlabs/mailverify/utils"
)

// ErrSyntax is returned by Parse for input that is not an addr-spec.
var ErrSyntax = errors.New("grammar: not an RFC 2822 addr-spec")

// Fragment is one named token of the grammar.
type Fragment struct {
	Name    string
	Clause  string // RFC 2822 section defining the token
	Pattern string
}

// Fragments is the addr-spec grammar in dependency order.
var Fragments = []Fragment{
	{"WSP", "2.2.2", `[ \t]`},
	{"CRLF", "2.2.3", `\r\n`},
	{"NO_WS_CTL", "3.2.1", `[\x01-\x08\x0b\x0c\x0e-\x1f\x7f]`},
	{"QUOTED_PAIR", "3.2.2", `\\.`},
	{"FWS", "3.2.3", `(?:{WSP}*{CRLF})?{WSP}+`},
	{"CTEXT", "3.2.3", `{NO_WS_CTL}|[\x21-\x27\x2a-\x5b\x5d-\x7e]`},
	{"CCONTENT", "3.2.3", `{CTEXT}|{QUOTED_PAIR}`},
	{"COMMENT", "3.2.3", `\((?:{FWS}?{CCONTENT})*{FWS}?\)`},
	{"CFWS", "3.2.3", `(?:{FWS}?{COMMENT})*(?:{FWS}?{COMMENT}|{FWS})`},
	{"ATEXT", "3.2.4", "[A-Za-z0-9!#$%&'*+\\-/=?^_`{|}~]"},
	{"ATOM", "3.2.4", `{CFWS}?{ATEXT}+{CFWS}?`},
	{"DOT_ATOM_TEXT", "3.2.4", `{ATEXT}+(?:\.{ATEXT}+)*`},
	{"DOT_ATOM", "3.2.4", `{CFWS}?{DOT_ATOM_TEXT}{CFWS}?`},
	{"QTEXT", "3.2.5", `{NO_WS_CTL}|[\x21\x23-\x5b\x5d-\x7e]`},
	{"QCONTENT", "3.2.5", `{QTEXT}|{QUOTED_PAIR}`},
	{"QUOTED_TEXT", "3.2.5", `"(?:{FWS}?{QCONTENT})*{FWS}?"`},
	{"QUOTED_STRING", "3.2.5", `{CFWS}?{QUOTED_TEXT}{CFWS}?`},
	{"LOCAL_PART", "3.4.1", `{DOT_ATOM}|{QUOTED_STRING}`},
	{"DTEXT", "3.4.1", `{NO_WS_CTL}|[\x21-\x5a\x5e-\x7e]`},
	{"DCONTENT", "3.4.1", `{DTEXT}|{QUOTED_PAIR}`},
	{"LITERAL_TEXT", "3.4.1", `\[(?:{FWS}?{DCONTENT})*{FWS}?\]`},
	{"DOMAIN_LITERAL", "3.4.1", `{CFWS}?{LITERAL_TEXT}{CFWS}?`},
	{"DOMAIN", "3.4.1", `{DOT_ATOM}|{DOMAIN_LITERAL}`},
	{"ADDR_SPEC", "3.4.1", `(?P<local>{LOCAL_PART})@(?P<domain>{DOMAIN})`},
}

var refPattern = regexp.MustCompile(`\{([A-Z_]+)\}`)

// expand replaces each {NAME} reference in pattern with the expansion
// of that fragment wrapped in a non-capturing group.
func expand(pattern string, expanded map[string]string) (string, error) {
	var missing []string
	out := refPattern.ReplaceAllStringFunc(pattern, func(ref string) string {
		name := ref[1 : len(ref)-1]
		body, ok := expanded[name]
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return "(?:" + body + ")"
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("grammar: undefined or forward reference to %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// expandTable expands every fragment in table order. A fragment only
// sees the fragments before it, so forward references fail.
func expandTable() (map[string]string, error) {
	expanded := make(map[string]string, len(Fragments))
	for _, f := range Fragments {
		if _, dup := expanded[f.Name]; dup {
			return nil, fmt.Errorf("grammar: fragment %s defined twice", f.Name)
		}
		body, err := expand(f.Pattern, expanded)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		expanded[f.Name] = body
	}
	return expanded, nil
}

// Expand returns the fully expanded, unanchored pattern of a fragment.
func Expand(name string) (string, error) {
	expanded, err := expandTable()
	if err != nil {
		return "", err
	}
	body, ok := expanded[name]
	if !ok {
		return "", fmt.Errorf("grammar: unknown fragment %q", name)
	}
	return body, nil
}

// Compile compiles the named fragment anchored at both ends, so the
// result only accepts strings that are entirely that token.
func Compile(name string) (*regexp.Regexp, error) {
	body, err := Expand(name)
	if err != nil {
		return nil, err
	}
	return regexp.Compile(`^(?:` + body + `)$`)
}

// compose builds an anchored expression from a template referencing
// table fragments. It panics if the table is broken.
func compose(template string) *regexp.Regexp {
	expanded, err := expandTable()
	if err != nil {
		panic(err)
	}
	body, err := expand(template, expanded)
	if err != nil {
		panic(err)
	}
	return regexp.MustCompile(`^(?:` + body + `)$`)
}

var (
	addrSpec   = compose(`{ADDR_SPEC}`)
	bareLocal  = compose(`{CFWS}?(?P<core>{DOT_ATOM_TEXT}|{QUOTED_TEXT}){CFWS}?`)
	bareDomain = compose(`{CFWS}?(?P<core>{DOT_ATOM_TEXT}|{LITERAL_TEXT}){CFWS}?`)

	localIndex  = addrSpec.SubexpIndex("local")
	domainIndex = addrSpec.SubexpIndex("domain")
)

// Address is an addr-spec split into its local part and domain. Both
// parts are kept as written, including any comments or folding
// whitespace around them.
type Address struct {
	Raw       string
	LocalPart string
	Domain    string
}

// IsValid reports whether address is, in its entirety, an RFC 2822
// addr-spec. It never panics; empty or non-ASCII input is rejected.
func IsValid(address string) bool {
	if address == "" || utils.ContainsNonASCII(address) {
		return false
	}
	return addrSpec.MatchString(address)
}

// Parse matches address against the addr-spec grammar and splits it.
func Parse(address string) (Address, error) {
	if !IsValid(address) {
		return Address{}, ErrSyntax
	}
	m := addrSpec.FindStringSubmatch(address)
	return Address{
		Raw:       address,
		LocalPart: m[localIndex],
		Domain:    m[domainIndex],
	}, nil
}

// core extracts the token inside surrounding CFWS and unfolds it. Folding
// whitespace inside quotes or brackets keeps its WSP but loses the CRLF
// (RFC 2822 Section 2.2.3).
func core(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[re.SubexpIndex("core")], "\r\n", "")
}

// IsDomainLiteral reports whether the domain is a bracketed literal.
func (a Address) IsDomainLiteral() bool {
	return strings.HasPrefix(core(bareDomain, a.Domain), "[")
}

// Host returns the domain name with comments and folding whitespace
// removed, or "" for a domain literal.
func (a Address) Host() string {
	d := core(bareDomain, a.Domain)
	if strings.HasPrefix(d, "[") {
		return ""
	}
	return d
}

// Literal returns the text between the brackets of a domain literal,
// or "" for a domain name.
func (a Address) Literal() string {
	d := core(bareDomain, a.Domain)
	if !strings.HasPrefix(d, "[") {
		return ""
	}
	return d[1 : len(d)-1]
}

// Mailbox returns the address with comments and folding whitespace
// stripped from both parts and quoted or bracketed text unfolded,
// suitable for an SMTP forward-path.
func (a Address) Mailbox() string {
	return core(bareLocal, a.LocalPart) + "@" + core(bareDomain, a.Domain)
}

// String returns the address as given.
func (a Address) String() string {
	return a.Raw
}
