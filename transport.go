package stackaddr

import (
	"fmt"
	"strconv"
)

// TransportKind identifies a combined transport pairing recognized by
// StackAddr.Transport.
type TransportKind uint8

const (
	// TransportTCP is plain TCP
	TransportTCP TransportKind = iota + 1
	// TransportUDP is plain UDP
	TransportUDP
	// TransportTLSTCP is TLS over TCP
	TransportTLSTCP
	// TransportQUIC is QUIC over UDP
	TransportQUIC
	// TransportWS is WebSocket
	TransportWS
	// TransportWSS is secure WebSocket
	TransportWSS
	// TransportWebTransport is WebTransport
	TransportWebTransport
)

// String returns a human-readable name for the transport kind.
func (k TransportKind) String() string {
	switch k {
	case TransportTCP:
		return "tcp"
	case TransportUDP:
		return "udp"
	case TransportTLSTCP:
		return "tls/tcp"
	case TransportQUIC:
		return "quic"
	case TransportWS:
		return "ws"
	case TransportWSS:
		return "wss"
	case TransportWebTransport:
		return "wtr"
	default:
		return fmt.Sprintf("TransportKind(%d)", uint8(k))
	}
}

// TransportProtocol is the result of folding a port-bearing protocol
// segment with an adjacent security or datagram marker: Udp+Quic becomes
// Quic, Tcp+Tls becomes TlsTcp, and the WebSocket/WebTransport variants
// carry their port through unchanged.
type TransportProtocol struct {
	Kind TransportKind
	Port uint16
}

// Secure reports whether the transport is protected by TLS (directly or
// via QUIC/WSS/WebTransport).
func (t TransportProtocol) Secure() bool {
	switch t.Kind {
	case TransportTLSTCP, TransportQUIC, TransportWSS, TransportWebTransport:
		return true
	default:
		return false
	}
}

// String renders the transport as "<kind>/<port>".
func (t TransportProtocol) String() string {
	return t.Kind.String() + "/" + strconv.Itoa(int(t.Port))
}
