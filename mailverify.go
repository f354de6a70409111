// Mailverify validates email addresses at three depths.
//
// # Syntax
//
// Check that a string is an RFC 2822 addr-spec. No I/O is performed:
//
//	ok := mailverify.IsSyntacticallyValid(`"john doe"@example.com`)
//
// # MX Check and Verification
//
// Check that the domain has mail exchangers, and optionally ask them
// whether they accept the recipient:
//
//	ok, err := mailverify.Validate("user@example.com", true, false)
//	ok, err := mailverify.Validate("user@example.com", true, true)
//
// Exchangers are probed in priority order. The first one that accepts or
// rejects the recipient decides; unreachable exchangers and servers that
// drop the connection before answering are skipped.
//
// # Validator
//
// For control over DNS, probing and logging, build a Validator:
//
//	prober, err := mailverify.NewProber(mailverify.ProberConfig{
//	    LocalName: "verifier.example.com",
//	    Proxy:     "socks5://127.0.0.1:1080",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := mailverify.NewValidator(mailverify.Config{
//	    Resolver: dns.NewResolver(dns.ResolverConfig{Nameservers: []string{"9.9.9.9:53"}}),
//	    Prober:   prober,
//	    Logger:   slog.Default(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := v.Check(ctx, "user@example.com", true, true)
//
// A nil Resolver disables MX checks; they then fail with
// ErrResolutionUnavailable instead of reporting the address as invalid.
//
// # Serialization
//
// Reports serialize to JSON and MessagePack:
//
//	jsonData, err := report.ToJSON()
//	msgpackData, err := report.ToMessagePack()
//
//	report, err := mailverify.ReportFromMessagePack(msgpackData)
package mailverify
