package mailverify

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// Special fakeServer replies.
const (
	replyClose = "close" // drop the connection
	replyHang  = "hang"  // never answer
)

// fakeServer is a scripted SMTP server. Replies are keyed by command verb
// ("GREETING" for the banner); unscripted commands get "250 OK".
type fakeServer struct {
	replies map[string]string

	mu       sync.Mutex
	commands []string
}

// startFakeServer serves fs on a random local port and returns its address.
func startFakeServer(t *testing.T, fs *fakeServer) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	t.Cleanup(func() {
		close(done)
		listener.Close()
		wg.Wait()
	})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				fs.serve(conn, done)
			}()
		}
	}()

	return listener.Addr().String()
}

func (fs *fakeServer) reply(verb, fallback string) string {
	if r, ok := fs.replies[verb]; ok {
		return r
	}
	return fallback
}

// respond writes reply and reports whether the session continues.
func (fs *fakeServer) respond(conn net.Conn, reply string, done <-chan struct{}) bool {
	switch reply {
	case replyClose:
		return false
	case replyHang:
		<-done
		return false
	}
	_, err := io.WriteString(conn, strings.ReplaceAll(reply, "\n", "\r\n")+"\r\n")
	return err == nil
}

func (fs *fakeServer) serve(conn net.Conn, done <-chan struct{}) {
	defer conn.Close()
	go func() {
		<-done
		conn.Close()
	}()

	if !fs.respond(conn, fs.reply("GREETING", "220 fake.test ESMTP"), done) {
		return
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		fs.mu.Lock()
		fs.commands = append(fs.commands, line)
		fs.mu.Unlock()

		verb, _, _ := strings.Cut(line, " ")
		verb, _, _ = strings.Cut(strings.ToUpper(verb), ":")
		if verb == "QUIT" {
			fs.respond(conn, fs.reply(verb, "221 bye"), done)
			return
		}
		if !fs.respond(conn, fs.reply(verb, "250 OK"), done) {
			return
		}
	}
}

func (fs *fakeServer) received() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.commands...)
}

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClientConfig() *ClientConfig {
	return &ClientConfig{
		LocalName:      "tester.local",
		ConnectTimeout: 2 * time.Second,
		CommandTimeout: 2 * time.Second,
	}
}

func TestClientSession(t *testing.T) {
	fs := &fakeServer{}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}
	if got := client.Greeting(); got != "fake.test ESMTP" {
		t.Errorf("Greeting() = %q", got)
	}
	if err := client.Hello(); err != nil {
		t.Fatalf("Hello() error: %v", err)
	}
	if err := client.Mail(""); err != nil {
		t.Fatalf("Mail() error: %v", err)
	}
	if err := client.Rcpt("user@example.com"); err != nil {
		t.Fatalf("Rcpt() error: %v", err)
	}
	if err := client.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if err := client.Quit(); err != nil {
		t.Fatalf("Quit() error: %v", err)
	}

	want := []string{
		"HELO tester.local",
		"MAIL FROM:<>",
		"RCPT TO:<user@example.com>",
		"RSET",
		"QUIT",
	}
	got := fs.received()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("server received %q, want %q", got, want)
	}
}

func TestClientMultilineReply(t *testing.T) {
	fs := &fakeServer{replies: map[string]string{
		"GREETING": "220-fake.test ESMTP\n220 no UCE",
		"RCPT":     "550-5.1.1 No such user\n550 5.1.1 Try again never",
	}}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}
	if got := client.Greeting(); got != "fake.test ESMTP\nno UCE" {
		t.Errorf("Greeting() = %q", got)
	}
	if err := client.Hello(); err != nil {
		t.Fatalf("Hello() error: %v", err)
	}
	if err := client.Mail(""); err != nil {
		t.Fatalf("Mail() error: %v", err)
	}

	err := client.Rcpt("nobody@example.com")
	var smtpErr *SMTPError
	if !errors.As(err, &smtpErr) {
		t.Fatalf("Rcpt() error = %v, want *SMTPError", err)
	}
	if smtpErr.Code != 550 || smtpErr.EnhancedCode != "5.1.1" {
		t.Errorf("SMTPError = %+v", smtpErr)
	}
	if !smtpErr.IsPermanent() || smtpErr.IsTransient() {
		t.Error("550 should be permanent")
	}

	resp := client.LastResponse()
	if resp == nil || len(resp.Lines) != 2 || !resp.IsPermanentError() {
		t.Errorf("LastResponse() = %+v", resp)
	}
}

func TestClientGreetingRejected(t *testing.T) {
	fs := &fakeServer{replies: map[string]string{"GREETING": "554 go away"}}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	err := client.DialContext(context.Background(), addr)
	var smtpErr *SMTPError
	if !errors.As(err, &smtpErr) || smtpErr.Code != 554 {
		t.Fatalf("DialContext() error = %v, want SMTP 554", err)
	}
	if err := client.Hello(); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Hello() after rejected greeting = %v, want ErrNoConnection", err)
	}
}

func TestClientServerDisconnect(t *testing.T) {
	fs := &fakeServer{replies: map[string]string{"RCPT": replyClose}}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}
	if err := client.Hello(); err != nil {
		t.Fatalf("Hello() error: %v", err)
	}
	if err := client.Mail(""); err != nil {
		t.Fatalf("Mail() error: %v", err)
	}
	if err := client.Rcpt("user@example.com"); !errors.Is(err, ErrServerDisconnected) {
		t.Errorf("Rcpt() error = %v, want ErrServerDisconnected", err)
	}
}

func TestClientCommandTimeout(t *testing.T) {
	fs := &fakeServer{replies: map[string]string{"HELO": replyHang}}
	addr := startFakeServer(t, fs)

	config := testClientConfig()
	config.CommandTimeout = 100 * time.Millisecond
	client := NewClient(config)
	defer client.Close()

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}

	start := time.Now()
	err := client.Hello()
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Errorf("Hello() error = %v, want timeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Hello() took %v", elapsed)
	}
}

func TestClientContextCancel(t *testing.T) {
	fs := &fakeServer{replies: map[string]string{"HELO": replyHang}}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := client.DialContext(ctx, addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}

	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	if err := client.Hello(); err == nil {
		t.Error("Hello() expected error after cancel")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancel took %v to abort the command", elapsed)
	}
}

func TestClientDialRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	client := NewClient(testClientConfig())
	if err := client.DialContext(context.Background(), addr); err == nil {
		t.Error("DialContext() expected error for closed port")
	}
}

func TestClientClosed(t *testing.T) {
	client := NewClient(nil)
	if err := client.Hello(); !errors.Is(err, ErrNoConnection) {
		t.Errorf("Hello() error = %v, want ErrNoConnection", err)
	}
	client.Close()
	if err := client.DialContext(context.Background(), "127.0.0.1:25"); !errors.Is(err, ErrClientClosed) {
		t.Errorf("DialContext() error = %v, want ErrClientClosed", err)
	}
}

func TestClientLineBreakInCommand(t *testing.T) {
	fs := &fakeServer{}
	addr := startFakeServer(t, fs)

	client := NewClient(testClientConfig())
	defer client.Close()

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}
	for _, to := range []string{"a\r\nDATA", "a\nRSET", "a\rb"} {
		if err := client.Rcpt(to); !errors.Is(err, ErrLineBreak) {
			t.Errorf("Rcpt(%q) error = %v, want ErrLineBreak", to, err)
		}
	}
	if err := client.Mail("x@example.com>\r\nRCPT TO:<y@example.com"); !errors.Is(err, ErrLineBreak) {
		t.Errorf("Mail() error = %v, want ErrLineBreak", err)
	}

	// The session stays in step after a refused command.
	if err := client.Rcpt("user@example.com"); err != nil {
		t.Fatalf("Rcpt() error: %v", err)
	}
	if got := fs.received(); len(got) != 1 || got[0] != "RCPT TO:<user@example.com>" {
		t.Errorf("server received %q, want only the valid RCPT", got)
	}
}

func TestClientDebugTranscript(t *testing.T) {
	fs := &fakeServer{}
	addr := startFakeServer(t, fs)

	var transcript strings.Builder
	config := testClientConfig()
	config.Debug = true
	config.DebugWriter = &transcript
	client := NewClient(config)

	if err := client.DialContext(context.Background(), addr); err != nil {
		t.Fatalf("DialContext() error: %v", err)
	}
	if err := client.Hello(); err != nil {
		t.Fatalf("Hello() error: %v", err)
	}
	client.Quit()

	want := "S: 220 fake.test ESMTP\nC: HELO tester.local\nS: 250 OK\nC: QUIT\nS: 221 bye\n"
	if transcript.String() != want {
		t.Errorf("transcript = %q, want %q", transcript.String(), want)
	}
}

func TestParseEnhancedCode(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"5.1.1 No such user", "5.1.1"},
		{"2.0.0 OK", "2.0.0"},
		{"4.7.1", "4.7.1"},
		{"OK", ""},
		{"5.1 missing part", ""},
		{"a.b.c text", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseEnhancedCode(tt.msg); got != tt.want {
			t.Errorf("parseEnhancedCode(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
