package mailverify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/proxy"

	smtpio "github.com/synqronlabs/mailverify/io"
)

var (
	// ErrClientClosed is returned when dialing a client that was closed.
	ErrClientClosed = errors.New("smtp: client closed")

	// ErrNoConnection is returned for a command sent before dialing.
	ErrNoConnection = errors.New("smtp: no connection established")

	// ErrUnexpectedResponse is returned for a reply that is not a valid
	// SMTP reply line.
	ErrUnexpectedResponse = errors.New("smtp: unexpected server response")

	// ErrLineBreak is returned for a command whose arguments contain CR
	// or LF. Nothing is written to the connection.
	ErrLineBreak = errors.New("smtp: line break in command")

	// ErrServerDisconnected is returned when the server drops the
	// connection in the middle of a command.
	ErrServerDisconnected = errors.New("smtp: server disconnected")
)

// ClientConfig holds configuration for the SMTP client.
type ClientConfig struct {
	LocalName      string // Hostname for HELO (default: "localhost")
	ConnectTimeout time.Duration
	CommandTimeout time.Duration // Bounds each command and its reply

	// Dialer opens the TCP connection. Default: a net.Dialer with
	// ConnectTimeout. A SOCKS5 dialer from golang.org/x/net/proxy fits here.
	Dialer proxy.ContextDialer

	Debug       bool
	DebugWriter io.Writer
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		LocalName:      "localhost",
		ConnectTimeout: 10 * time.Second,
		CommandTimeout: 30 * time.Second,
	}
}

// Client is a minimal SMTP client for probing mail exchangers: it greets,
// opens a transaction and checks recipients, but never sends data.
type Client struct {
	config       *ClientConfig
	conn         net.Conn
	reader       *bufio.Reader
	writer       *bufio.Writer
	mu           sync.Mutex
	greeting     string
	closed       bool
	lastResponse *ClientResponse
	ctxDeadline  time.Time
	stopWatch    func() bool
}

// ClientResponse represents a parsed SMTP server response.
type ClientResponse struct {
	Code         int
	Message      string
	Lines        []string
	EnhancedCode string
}

// IsSuccess returns true if the response indicates success (2xx).
func (r *ClientResponse) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}

// IsTransientError returns true if the response indicates a transient error (4xx).
func (r *ClientResponse) IsTransientError() bool {
	return r.Code >= 400 && r.Code < 500
}

// IsPermanentError returns true if the response indicates a permanent error (5xx).
func (r *ClientResponse) IsPermanentError() bool {
	return r.Code >= 500 && r.Code < 600
}

// Error returns the response as an error unless it indicates success.
func (r *ClientResponse) Error() error {
	if r.IsSuccess() {
		return nil
	}
	return &SMTPError{
		Code:         r.Code,
		EnhancedCode: r.EnhancedCode,
		Message:      r.Message,
	}
}

// SMTPError is a reply from the server that refused a command.
type SMTPError struct {
	Code         int
	EnhancedCode string
	Message      string
}

func (e *SMTPError) Error() string {
	if e.EnhancedCode != "" {
		return fmt.Sprintf("SMTP %d %s: %s", e.Code, e.EnhancedCode, e.Message)
	}
	return fmt.Sprintf("SMTP %d: %s", e.Code, e.Message)
}

// IsPermanent returns true if this is a permanent failure (5xx).
func (e *SMTPError) IsPermanent() bool {
	return e.Code >= 500 && e.Code < 600
}

// IsTransient returns true if this is a transient failure (4xx).
func (e *SMTPError) IsTransient() bool {
	return e.Code >= 400 && e.Code < 500
}

// NewClient creates a new SMTP client.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.LocalName == "" {
		config.LocalName = "localhost"
	}
	return &Client{config: config}
}

// DialContext connects to the server at address and reads its greeting.
// Cancelling ctx at any later point closes the connection, which aborts
// whatever command is in flight.
func (c *Client) DialContext(ctx context.Context, address string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	dialer := c.config.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: c.config.ConnectTimeout}
	}

	dialCtx := ctx
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.config.ConnectTimeout)
		defer cancel()
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", address)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	c.writer = bufio.NewWriter(conn)
	c.ctxDeadline, _ = ctx.Deadline()
	c.stopWatch = context.AfterFunc(ctx, func() {
		conn.Close()
	})

	resp, err := c.readResponse()
	if err != nil {
		c.close()
		return fmt.Errorf("failed to read greeting: %w", err)
	}
	if !resp.IsSuccess() {
		c.close()
		return resp.Error()
	}

	c.greeting = resp.Message
	return nil
}

// Hello sends HELO to the server.
func (c *Client) Hello() error {
	return c.command("HELO %s", c.config.LocalName)
}

// Mail starts a transaction with the given reverse-path. An empty from
// sends the null reverse-path "<>".
func (c *Client) Mail(from string) error {
	return c.command("MAIL FROM:<%s>", from)
}

// Rcpt asks the server to accept a recipient.
func (c *Client) Rcpt(to string) error {
	return c.command("RCPT TO:<%s>", to)
}

// Reset sends the RSET command.
func (c *Client) Reset() error {
	return c.command("RSET")
}

// command sends one command and turns a non-2xx reply into an *SMTPError.
func (c *Client) command(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNoConnection
	}
	if err := c.writeCommand(format, args...); err != nil {
		return err
	}
	resp, err := c.readResponse()
	if err != nil {
		return err
	}
	return resp.Error()
}

// Quit sends the QUIT command and closes the connection.
func (c *Client) Quit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNoConnection
	}

	if err := c.writeCommand("QUIT"); err != nil {
		c.close()
		return err
	}

	// The reply is a courtesy; do not fail on it.
	c.readResponse()

	return c.close()
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.close()
}

func (c *Client) close() error {
	c.closed = true
	if c.stopWatch != nil {
		c.stopWatch()
		c.stopWatch = nil
	}
	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	c.writer = nil

	return err
}

// Greeting returns the server's initial greeting message.
func (c *Client) Greeting() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.greeting
}

// LastResponse returns the most recent server response.
func (c *Client) LastResponse() *ClientResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastResponse
}

// RemoteAddr returns the address of the connected server, or nil.
func (c *Client) RemoteAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// deadline is the command timeout from now, capped by the dial context.
func (c *Client) deadline() time.Time {
	var d time.Time
	if c.config.CommandTimeout > 0 {
		d = time.Now().Add(c.config.CommandTimeout)
	}
	if !c.ctxDeadline.IsZero() && (d.IsZero() || c.ctxDeadline.Before(d)) {
		d = c.ctxDeadline
	}
	return d
}

// writeCommand sends a command to the server.
func (c *Client) writeCommand(format string, args ...any) error {
	cmd := fmt.Sprintf(format, args...)
	if strings.ContainsAny(cmd, "\r\n") {
		return ErrLineBreak
	}

	if c.config.Debug && c.config.DebugWriter != nil {
		fmt.Fprintf(c.config.DebugWriter, "C: %s\n", cmd)
	}

	c.conn.SetDeadline(c.deadline())

	if _, err := c.writer.WriteString(cmd + "\r\n"); err != nil {
		return transportError(err)
	}
	return transportError(c.writer.Flush())
}

// readResponse reads and parses a server response.
func (c *Client) readResponse() (*ClientResponse, error) {
	c.conn.SetDeadline(c.deadline())

	var lines []string
	var code int

	for {
		line, err := smtpio.ReadLine(c.reader, smtpio.MaxReplyLine, false)
		if err != nil {
			return nil, transportError(err)
		}

		if c.config.Debug && c.config.DebugWriter != nil {
			fmt.Fprintf(c.config.DebugWriter, "S: %s\n", line)
		}

		reply, err := smtpio.ParseReplyLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		}

		if code == 0 {
			code = reply.Code
		} else if reply.Code != code {
			return nil, fmt.Errorf("%w: inconsistent codes", ErrUnexpectedResponse)
		}
		lines = append(lines, reply.Text)

		if reply.Last {
			break
		}
	}

	resp := &ClientResponse{
		Code:    code,
		Message: strings.Join(lines, "\n"),
		Lines:   lines,
	}
	if len(lines) > 0 {
		resp.EnhancedCode = parseEnhancedCode(lines[0])
	}

	c.lastResponse = resp
	return resp, nil
}

// transportError marks a connection dropped by the peer.
func transportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return fmt.Errorf("%w: %w", ErrServerDisconnected, err)
	}
	return err
}

// parseEnhancedCode extracts an enhanced status code from a response message.
func parseEnhancedCode(msg string) string {
	code, _, _ := strings.Cut(msg, " ")
	parts := strings.Split(code, ".")
	if len(parts) != 3 {
		return ""
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return ""
		}
	}
	return code
}
