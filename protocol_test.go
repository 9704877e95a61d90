package stackaddr

import (
	"net/netip"
	"testing"
)

func TestProtocolDisplay(t *testing.T) {
	tests := []struct {
		name  string
		proto Protocol
		want  string
	}{
		{"mac", MAC([6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}), "/mac/aa:bb:cc:dd:ee:ff"},
		{"ip4", IP4(netip.MustParseAddr("192.168.10.10")), "/ip4/192.168.10.10"},
		{"ip6", IP6(netip.MustParseAddr("::1")), "/ip6/::1"},
		{"dns", DNS("example.com"), "/dns/example.com"},
		{"dns4", DNS4("example.com"), "/dns4/example.com"},
		{"dns6", DNS6("example.com"), "/dns6/example.com"},
		{"tcp", TCP(443), "/tcp/443"},
		{"udp", UDP(4433), "/udp/4433"},
		{"tls", TLS(), "/tls"},
		{"quic", QUIC(), "/quic"},
		{"http", HTTP(), "/http"},
		{"https", HTTPS(), "/https"},
		{"ws", WS(8080), "/ws/8080"},
		{"wss", WSS(443), "/wss/443"},
		{"webtransport", WebTransport(4433), "/wtr/4433"},
		{"webrtc", WebRTC(), "/webrtc"},
		{"onion", Onion("3g2upl4pq6kufc4m"), "/onion/3g2upl4pq6kufc4m"},
		{"custom", Custom("my-proto"), "/custom/my-proto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.proto.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProtocolDisplaySequence(t *testing.T) {
	t.Run("mac then ip4", func(t *testing.T) {
		protos := []Protocol{
			MAC([6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}),
			IP4(netip.MustParseAddr("192.168.10.10")),
		}
		var text string
		for _, p := range protos {
			text += p.String()
		}
		if text != "/mac/aa:bb:cc:dd:ee:ff/ip4/192.168.10.10" {
			t.Errorf("concatenated = %q", text)
		}
	})

	t.Run("ip4 udp quic", func(t *testing.T) {
		protos := []Protocol{
			IP4(netip.MustParseAddr("127.0.0.1")),
			UDP(4433),
			QUIC(),
		}
		var text string
		for _, p := range protos {
			text += p.String()
		}
		if text != "/ip4/127.0.0.1/udp/4433/quic" {
			t.Errorf("concatenated = %q", text)
		}
	})

	t.Run("ip6 tcp https", func(t *testing.T) {
		protos := []Protocol{
			IP6(netip.MustParseAddr("::1")),
			TCP(443),
			HTTPS(),
		}
		var text string
		for _, p := range protos {
			text += p.String()
		}
		if text != "/ip6/::1/tcp/443/https" {
			t.Errorf("concatenated = %q", text)
		}
	})
}

func TestProtocolEquality(t *testing.T) {
	t.Run("markers compare by tag only", func(t *testing.T) {
		if TLS() != TLS() {
			t.Error("TLS() should equal TLS()")
		}
		if QUIC() == TLS() {
			t.Error("QUIC() should not equal TLS()")
		}
	})

	t.Run("port variants compare by tag and value", func(t *testing.T) {
		if TCP(80) != TCP(80) {
			t.Error("TCP(80) should equal TCP(80)")
		}
		if TCP(80) == TCP(443) {
			t.Error("TCP(80) should not equal TCP(443)")
		}
		if TCP(80) == UDP(80) {
			t.Error("TCP(80) should not equal UDP(80)")
		}
	})
}

func TestProtocolPredicates(t *testing.T) {
	transports := []Protocol{TCP(80), UDP(53), QUIC(), WS(80), WSS(443), WebTransport(4433)}
	for _, p := range transports {
		if !p.IsTransport() {
			t.Errorf("%s should be a transport", p)
		}
	}

	addresses := []Protocol{
		IP4(netip.MustParseAddr("10.0.0.1")),
		IP6(netip.MustParseAddr("::1")),
		DNS("a"), DNS4("b"), DNS6("c"),
	}
	for _, p := range addresses {
		if !p.IsAddress() {
			t.Errorf("%s should be an address", p)
		}
		if p.IsTransport() {
			t.Errorf("%s should not be a transport", p)
		}
	}

	if TLS().IsTransport() || TLS().IsAddress() {
		t.Error("tls marker is neither transport nor address")
	}
}

func TestParseMACProtocol(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := ParseMACProtocol("aa:bb:cc:dd:ee:ff")
		if err != nil {
			t.Fatalf("ParseMACProtocol() error = %v", err)
		}
		if p.String() != "/mac/aa:bb:cc:dd:ee:ff" {
			t.Errorf("String() = %q", p.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseMACProtocol("not-a-mac"); err == nil {
			t.Error("expected error for invalid MAC")
		}
	})

	t.Run("eui-64 rejected", func(t *testing.T) {
		if _, err := ParseMACProtocol("aa:bb:cc:dd:ee:ff:00:11"); err == nil {
			t.Error("expected error for 8-byte hardware address")
		}
	})
}

func TestTransportProtocol(t *testing.T) {
	secure := []TransportKind{TransportTLSTCP, TransportQUIC, TransportWSS, TransportWebTransport}
	for _, k := range secure {
		tp := TransportProtocol{Kind: k, Port: 443}
		if !tp.Secure() {
			t.Errorf("%s should be secure", k)
		}
	}

	plain := []TransportKind{TransportTCP, TransportUDP, TransportWS}
	for _, k := range plain {
		tp := TransportProtocol{Kind: k, Port: 80}
		if tp.Secure() {
			t.Errorf("%s should not be secure", k)
		}
	}

	tp := TransportProtocol{Kind: TransportTLSTCP, Port: 443}
	if tp.String() != "tls/tcp/443" {
		t.Errorf("String() = %q, want %q", tp.String(), "tls/tcp/443")
	}
}
