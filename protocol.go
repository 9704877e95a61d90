package stackaddr

import (
	"bytes"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// ProtocolCode identifies a protocol variant. It is the discriminant tag of
// the Protocol union: marker protocols are fully described by their code,
// while the remaining codes select which payload field of Protocol is live.
type ProtocolCode uint8

const (
	// CodeMAC is a MAC hardware address (layer 2)
	CodeMAC ProtocolCode = iota + 1
	// CodeIP4 is an IPv4 address (layer 3)
	CodeIP4
	// CodeIP6 is an IPv6 address (layer 3)
	CodeIP6
	// CodeDNS is a DNS name with no family hint
	CodeDNS
	// CodeDNS4 is a DNS name resolving to IPv4
	CodeDNS4
	// CodeDNS6 is a DNS name resolving to IPv6
	CodeDNS6
	// CodeTCP is a TCP port (layer 4)
	CodeTCP
	// CodeUDP is a UDP port (layer 4)
	CodeUDP
	// CodeTLS is the TLS marker (over TCP)
	CodeTLS
	// CodeQUIC is the QUIC marker (over UDP)
	CodeQUIC
	// CodeHTTP is the HTTP marker
	CodeHTTP
	// CodeHTTPS is the HTTPS marker
	CodeHTTPS
	// CodeWS is a WebSocket port
	CodeWS
	// CodeWSS is a secure WebSocket port
	CodeWSS
	// CodeWebTransport is a WebTransport port (rendered as "wtr")
	CodeWebTransport
	// CodeWebRTC is the WebRTC marker
	CodeWebRTC
	// CodeOnion is a Tor onion address
	CodeOnion
	// CodeCustom is an arbitrary custom protocol name
	CodeCustom
)

// String returns the canonical wire keyword for the protocol code.
func (c ProtocolCode) String() string {
	switch c {
	case CodeMAC:
		return "mac"
	case CodeIP4:
		return "ip4"
	case CodeIP6:
		return "ip6"
	case CodeDNS:
		return "dns"
	case CodeDNS4:
		return "dns4"
	case CodeDNS6:
		return "dns6"
	case CodeTCP:
		return "tcp"
	case CodeUDP:
		return "udp"
	case CodeTLS:
		return "tls"
	case CodeQUIC:
		return "quic"
	case CodeHTTP:
		return "http"
	case CodeHTTPS:
		return "https"
	case CodeWS:
		return "ws"
	case CodeWSS:
		return "wss"
	case CodeWebTransport:
		return "wtr"
	case CodeWebRTC:
		return "webrtc"
	case CodeOnion:
		return "onion"
	case CodeCustom:
		return "custom"
	default:
		return fmt.Sprintf("ProtocolCode(%d)", uint8(c))
	}
}

// Protocol is one protocol segment of a layered address, spanning link
// (MAC) through application (HTTP, WebTransport) layers.
//
// Only the payload field selected by Code is meaningful; the others stay at
// their zero value. The struct is comparable, so == gives exact structural
// equality: markers compare by tag alone, port-bearing variants by
// tag+port, and so on.
type Protocol struct {
	// Code selects the variant
	Code ProtocolCode
	// Addr carries the address for ip4/ip6
	Addr netip.Addr
	// HW carries the hardware address for mac
	HW [6]byte
	// Name carries the name for dns/dns4/dns6/onion/custom
	Name string
	// Port carries the port for tcp/udp/ws/wss/wtr
	Port uint16
}

// MAC creates a MAC address protocol segment.
func MAC(hw [6]byte) Protocol {
	return Protocol{Code: CodeMAC, HW: hw}
}

// ParseMACProtocol parses a colon-hex MAC string into a MAC protocol segment.
func ParseMACProtocol(s string) (Protocol, error) {
	hw, err := net.ParseMAC(s)
	if err != nil || len(hw) != 6 {
		return Protocol{}, newAddrError("parse", "mac address", ErrInvalidEncoding)
	}
	var b [6]byte
	copy(b[:], hw)
	return MAC(b), nil
}

// IP4 creates an IPv4 protocol segment.
func IP4(addr netip.Addr) Protocol {
	return Protocol{Code: CodeIP4, Addr: addr}
}

// IP6 creates an IPv6 protocol segment.
func IP6(addr netip.Addr) Protocol {
	return Protocol{Code: CodeIP6, Addr: addr}
}

// IP creates an IPv4 or IPv6 protocol segment depending on the address family.
func IP(addr netip.Addr) Protocol {
	if addr.Is4() {
		return IP4(addr)
	}
	return IP6(addr)
}

// DNS creates a DNS name segment with no family hint.
func DNS(name string) Protocol {
	return Protocol{Code: CodeDNS, Name: name}
}

// DNS4 creates a DNS name segment hinting IPv4 resolution.
func DNS4(name string) Protocol {
	return Protocol{Code: CodeDNS4, Name: name}
}

// DNS6 creates a DNS name segment hinting IPv6 resolution.
func DNS6(name string) Protocol {
	return Protocol{Code: CodeDNS6, Name: name}
}

// TCP creates a TCP port segment.
func TCP(port uint16) Protocol {
	return Protocol{Code: CodeTCP, Port: port}
}

// UDP creates a UDP port segment.
func UDP(port uint16) Protocol {
	return Protocol{Code: CodeUDP, Port: port}
}

// TLS creates the TLS marker segment.
func TLS() Protocol {
	return Protocol{Code: CodeTLS}
}

// QUIC creates the QUIC marker segment.
func QUIC() Protocol {
	return Protocol{Code: CodeQUIC}
}

// HTTP creates the HTTP marker segment.
func HTTP() Protocol {
	return Protocol{Code: CodeHTTP}
}

// HTTPS creates the HTTPS marker segment.
func HTTPS() Protocol {
	return Protocol{Code: CodeHTTPS}
}

// WS creates a WebSocket port segment.
func WS(port uint16) Protocol {
	return Protocol{Code: CodeWS, Port: port}
}

// WSS creates a secure WebSocket port segment.
func WSS(port uint16) Protocol {
	return Protocol{Code: CodeWSS, Port: port}
}

// WebTransport creates a WebTransport port segment.
func WebTransport(port uint16) Protocol {
	return Protocol{Code: CodeWebTransport, Port: port}
}

// WebRTC creates the WebRTC marker segment.
func WebRTC() Protocol {
	return Protocol{Code: CodeWebRTC}
}

// Onion creates a Tor onion address segment.
func Onion(addr string) Protocol {
	return Protocol{Code: CodeOnion, Name: addr}
}

// Custom creates a custom protocol segment with the given name.
func Custom(name string) Protocol {
	return Protocol{Code: CodeCustom, Name: name}
}

// IsTransport reports whether the protocol carries transport semantics
// (a port-bearing variant or the QUIC marker).
func (p Protocol) IsTransport() bool {
	switch p.Code {
	case CodeTCP, CodeUDP, CodeQUIC, CodeWS, CodeWSS, CodeWebTransport:
		return true
	default:
		return false
	}
}

// IsAddress reports whether the protocol names a network endpoint
// (an IP address or a DNS name).
func (p Protocol) IsAddress() bool {
	switch p.Code {
	case CodeIP4, CodeIP6, CodeDNS, CodeDNS4, CodeDNS6:
		return true
	default:
		return false
	}
}

// String renders the canonical "/<keyword>[/<value>]" form of the protocol.
func (p Protocol) String() string {
	switch p.Code {
	case CodeMAC:
		return "/mac/" + net.HardwareAddr(p.HW[:]).String()
	case CodeIP4, CodeIP6:
		return "/" + p.Code.String() + "/" + p.Addr.String()
	case CodeDNS, CodeDNS4, CodeDNS6, CodeOnion, CodeCustom:
		return "/" + p.Code.String() + "/" + p.Name
	case CodeTCP, CodeUDP, CodeWS, CodeWSS, CodeWebTransport:
		return "/" + p.Code.String() + "/" + strconv.Itoa(int(p.Port))
	case CodeTLS, CodeQUIC, CodeHTTP, CodeHTTPS, CodeWebRTC:
		return "/" + p.Code.String()
	default:
		return "/" + p.Code.String()
	}
}

func (Protocol) segment() {}

// compare defines a total order over protocols: by code first, then by the
// payload relevant to that code.
func (p Protocol) compare(other Protocol) int {
	if p.Code != other.Code {
		if p.Code < other.Code {
			return -1
		}
		return 1
	}
	switch p.Code {
	case CodeMAC:
		return bytes.Compare(p.HW[:], other.HW[:])
	case CodeIP4, CodeIP6:
		return p.Addr.Compare(other.Addr)
	case CodeDNS, CodeDNS4, CodeDNS6, CodeOnion, CodeCustom:
		return strings.Compare(p.Name, other.Name)
	case CodeTCP, CodeUDP, CodeWS, CodeWSS, CodeWebTransport:
		if p.Port != other.Port {
			if p.Port < other.Port {
				return -1
			}
			return 1
		}
		return 0
	default:
		return 0
	}
}
