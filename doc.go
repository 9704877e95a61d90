// Package stackaddr implements a self-describing, layered textual address
// format: an ordered stack of typed segments covering network protocols
// (L2-L7), cryptographic identities, resource paths, and metadata, which
// round-trips losslessly to and from a canonical slash-delimited string.
//
// # Getting Started
//
// Build an address fluently or parse one from its canonical form:
//
//	addr := stackaddr.Empty().
//	    WithProtocol(stackaddr.IP4(netip.MustParseAddr("192.168.10.10"))).
//	    WithProtocol(stackaddr.UDP(4433)).
//	    WithProtocol(stackaddr.QUIC())
//
//	fmt.Println(addr) // /ip4/192.168.10.10/udp/4433/quic
//
//	parsed, err := stackaddr.Parse("/ip4/127.0.0.1/tcp/443/tls/http")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port, _ := parsed.Port() // 443
//
// # Core Types
//
//   - [StackAddr]: the ordered segment container; owns parsing,
//     rendering, mutation, and derived queries
//   - [Protocol]: one network protocol token (mac, ip4, tcp, quic, ...)
//   - [Identity]: a node/peer/uuid/custom identifier with base32 string
//     encoding
//   - [Path] and [Metadata]: resource path and key-value annotation
//     segments
//
// # String Form
//
// Every segment renders as "/<keyword>[/<value>]" and segments
// concatenate without extra separators. Binary identity payloads use
// base32 (RFC 4648, no padding); UUIDs use lowercase hyphenless hex.
// The parser accepts exactly what the renderer produces, so
// Parse(addr.String()) reconstructs an equal address.
//
// # Parsing Policies
//
// [Parse] is permissive: unrecognized tokens become Path segments, so
// "/downloads/images" is two path segments. [ParseStrict] instead
// rejects unknown keywords with [ErrUnknownProtocol], for
// interoperability with producers that only emit known keywords.
//
// Name resolution is delegated to the host environment: [StackAddr.SocketAddrs]
// hands the host/port pair to the system resolver, and
// [StackAddr.SocketAddrsWith] accepts any [Resolver].
//
// The package performs no I/O besides that optional resolver call and
// holds no shared mutable state; addresses are independently owned values.
package stackaddr
