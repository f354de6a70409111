package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/synqronlabs/mailverify"
	"github.com/synqronlabs/mailverify/dns"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	checkMX     bool
	verify      bool
	format      string
	resolver    string
	nameservers string
	dnssec      bool
	proxy       string
	helo        string
	mailFrom    string
	timeout     time.Duration
	maxHosts    int
	strict      bool
	debug       bool
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}
	fs := flag.NewFlagSet("mailverify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mailverify [flags] address...")
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.checkMX, "mx", false, "require mail exchangers for the domain")
	fs.BoolVar(&opts.verify, "verify", false, "ask the exchangers whether they accept the recipient (implies -mx)")
	fs.StringVar(&opts.format, "format", "text", "output format: text, json or msgpack")
	fs.StringVar(&opts.resolver, "resolver", "dns", "MX resolver: dns (built-in client) or system (Go resolver, no -dnssec)")
	fs.StringVar(&opts.nameservers, "nameserver", "", "comma-separated name servers (host:port); default from resolv.conf")
	fs.BoolVar(&opts.dnssec, "dnssec", false, "request DNSSEC validation of MX answers")
	fs.StringVar(&opts.proxy, "proxy", "", "SOCKS5 proxy URL for SMTP connections (socks5://host:port)")
	fs.StringVar(&opts.helo, "helo", "localhost", "name sent with HELO")
	fs.StringVar(&opts.mailFrom, "from", "", "reverse-path for MAIL FROM (default: null sender)")
	fs.DurationVar(&opts.timeout, "timeout", time.Minute, "time budget per exchanger")
	fs.IntVar(&opts.maxHosts, "max-hosts", 0, "probe at most this many exchangers (0: all)")
	fs.BoolVar(&opts.strict, "strict", false, "treat verification without a definitive answer as invalid")
	fs.BoolVar(&opts.debug, "debug", false, "print the SMTP transcript to stderr")
	fs.BoolVar(&opts.verbose, "v", false, "log check progress")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	switch opts.format {
	case "text", "json", "msgpack":
	default:
		return nil, nil, fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.resolver != "dns" && opts.resolver != "system" {
		return nil, nil, fmt.Errorf("unknown resolver %q", opts.resolver)
	}
	if opts.resolver == "system" && opts.dnssec {
		return nil, nil, errors.New("-dnssec requires -resolver dns")
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return nil, nil, errors.New("no address given")
	}
	return opts, fs.Args(), nil
}

func newValidator(opts *options, stderr io.Writer) (*mailverify.Validator, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var nameservers []string
	if opts.nameservers != "" {
		nameservers = strings.Split(opts.nameservers, ",")
	}

	var resolver dns.Resolver
	if opts.resolver == "system" {
		resolver = dns.NewStdResolverForServers(nameservers)
	} else {
		resolverConfig := dns.DefaultResolverConfig()
		resolverConfig.DNSSEC = opts.dnssec
		if nameservers != nil {
			resolverConfig.Nameservers = nameservers
		}
		resolver = dns.NewResolver(resolverConfig)
	}

	prober, err := mailverify.NewProber(mailverify.ProberConfig{
		LocalName:   opts.helo,
		MailFrom:    opts.mailFrom,
		HostTimeout: opts.timeout,
		Proxy:       opts.proxy,
		Debug:       opts.debug,
		DebugWriter: stderr,
	})
	if err != nil {
		return nil, err
	}

	policy := mailverify.InconclusiveValid
	if opts.strict {
		policy = mailverify.InconclusiveInvalid
	}

	return mailverify.NewValidator(mailverify.Config{
		Resolver:           resolver,
		Prober:             prober,
		Logger:             logger,
		InconclusivePolicy: policy,
		MaxHosts:           opts.maxHosts,
	})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, addresses, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}
		fmt.Fprintf(stderr, "mailverify: %v\n", err)
		return exitUsage
	}

	v, err := newValidator(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "mailverify: %v\n", err)
		return exitUsage
	}

	status := exitValid
	for _, address := range addresses {
		report, err := v.Check(ctx, address, opts.checkMX, opts.verify)
		if err != nil {
			fmt.Fprintf(stderr, "mailverify: %s: %v\n", address, err)
			if errors.Is(err, mailverify.ErrResolutionUnavailable) {
				return exitUsage
			}
			return exitInvalid
		}
		if err := writeReport(stdout, opts.format, report); err != nil {
			fmt.Fprintf(stderr, "mailverify: %v\n", err)
			return exitUsage
		}
		if !report.Valid {
			status = exitInvalid
		}
	}
	return status
}

func writeReport(w io.Writer, format string, report *mailverify.Report) error {
	var data []byte
	var err error
	switch format {
	case "json":
		data, err = report.ToJSON()
		data = append(data, '\n')
	case "msgpack":
		data, err = report.ToMessagePack()
	default:
		verdict := "invalid"
		if report.Valid {
			verdict = "valid"
		}
		data = fmt.Appendf(nil, "%s\t%s\t%s\n", report.Address, verdict, report.Reason)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
