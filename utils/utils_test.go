package utils

import (
	"net"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestContainsNonASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", false},
		{"plain address", "user@example.com", false},
		{"quoted address with controls", "\"a\tb\"@example.com", false},
		{"DEL is still ASCII", string([]byte{0x7f}), false},
		{"umlaut in domain", "user@exämple.com", true},
		{"CJK local part", "用户@example.com", true},
		{"lone high byte", string([]byte{0x80}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsNonASCII(tt.input); got != tt.want {
				t.Errorf("ContainsNonASCII(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		if _, err := ulid.ParseStrict(id); err != nil {
			t.Fatalf("GenerateID() = %q is not a ULID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("GenerateID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

type fakeAddr string

func (f fakeAddr) Network() string { return "tcp" }
func (f fakeAddr) String() string  { return string(f) }

func TestIPFromAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    net.Addr
		want    string
		wantErr bool
	}{
		{name: "nil", addr: nil, wantErr: true},
		{name: "tcp v4", addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.25"), Port: 25}, want: "192.0.2.25"},
		{name: "tcp v6", addr: &net.TCPAddr{IP: net.ParseIP("2001:db8::25"), Port: 25}, want: "2001:db8::25"},
		{name: "udp", addr: &net.UDPAddr{IP: net.ParseIP("10.0.0.53"), Port: 53}, want: "10.0.0.53"},
		{name: "ip", addr: &net.IPAddr{IP: net.ParseIP("198.51.100.1")}, want: "198.51.100.1"},
		{name: "string host:port", addr: fakeAddr("203.0.113.9:25"), want: "203.0.113.9"},
		{name: "string v6 host:port", addr: fakeAddr("[::1]:2525"), want: "::1"},
		{name: "string bare ip", addr: fakeAddr("10.1.2.3"), want: "10.1.2.3"},
		{name: "string hostname", addr: fakeAddr("mx.example.com:25"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, err := IPFromAddr(tt.addr)
			if tt.wantErr {
				if err == nil {
					t.Errorf("IPFromAddr() = %v, want error", ip)
				}
				return
			}
			if err != nil {
				t.Fatalf("IPFromAddr() unexpected error: %v", err)
			}
			if ip.String() != tt.want {
				t.Errorf("IPFromAddr() = %v, want %v", ip, tt.want)
			}
		})
	}
}
