package stackaddr

import (
	"hash/fnv"
	"net"
	"net/netip"
)

// StackAddr is an ordered stack of typed segments describing a layered
// network address, for example:
//
//	/ip4/192.168.10.10/udp/4433/quic/node/<base32>
//
// Layer segments are conventionally ordered low-to-high (link, network,
// transport, security, application), but that ordering is a caller
// contract: the type stores whatever sequence it is given.
//
// The zero value is the empty address. StackAddr values are independently
// owned — mutation requires exclusive access, and segments are cloned,
// never shared, across addresses.
type StackAddr struct {
	segments []Segment
}

// Empty creates a zero-segment address.
func Empty() *StackAddr {
	return &StackAddr{}
}

// New creates an address from the given segments, in order. Segments are
// cloned into the new address.
func New(segments ...Segment) *StackAddr {
	a := &StackAddr{segments: make([]Segment, 0, len(segments))}
	for _, s := range segments {
		a.segments = append(a.segments, cloneSegment(s))
	}
	return a
}

// WithIP creates an address holding a single IPv4 or IPv6 segment chosen
// by the address family.
func WithIP(addr netip.Addr) *StackAddr {
	return New(IP(addr))
}

// WithName creates an address holding a single DNS name segment.
func WithName(name string) *StackAddr {
	return New(DNS(name))
}

// WithNameV4 creates an address holding a single DNS name segment that
// hints IPv4 resolution.
func WithNameV4(name string) *StackAddr {
	return New(DNS4(name))
}

// WithNameV6 creates an address holding a single DNS name segment that
// hints IPv6 resolution.
func WithNameV6(name string) *StackAddr {
	return New(DNS6(name))
}

// UnspecifiedIPv4 creates an address holding the unspecified IPv4 address
// (0.0.0.0).
func UnspecifiedIPv4() *StackAddr {
	return New(IP4(netip.IPv4Unspecified()))
}

// UnspecifiedIPv6 creates an address holding the unspecified IPv6 address
// (::).
func UnspecifiedIPv6() *StackAddr {
	return New(IP6(netip.IPv6Unspecified()))
}

// With appends a segment and returns the address for fluent chaining.
func (a *StackAddr) With(s Segment) *StackAddr {
	a.segments = append(a.segments, cloneSegment(s))
	return a
}

// WithProtocol appends a protocol segment.
func (a *StackAddr) WithProtocol(p Protocol) *StackAddr {
	return a.With(p)
}

// WithIdentity appends an identity segment.
func (a *StackAddr) WithIdentity(i Identity) *StackAddr {
	return a.With(i)
}

// WithPath appends a path segment.
func (a *StackAddr) WithPath(path string) *StackAddr {
	return a.With(Path(path))
}

// WithMeta appends a metadata segment.
func (a *StackAddr) WithMeta(key, value string) *StackAddr {
	return a.With(Meta(key, value))
}

// Push appends a segment at the tail.
func (a *StackAddr) Push(s Segment) {
	a.segments = append(a.segments, cloneSegment(s))
}

// Pop removes and returns the tail segment. The bool is false on an empty
// address.
func (a *StackAddr) Pop() (Segment, bool) {
	if len(a.segments) == 0 {
		return nil, false
	}
	s := a.segments[len(a.segments)-1]
	a.segments = a.segments[:len(a.segments)-1]
	return s, true
}

// Len returns the number of segments.
func (a *StackAddr) Len() int {
	return len(a.segments)
}

// IsEmpty reports whether the address has no segments.
func (a *StackAddr) IsEmpty() bool {
	return a == nil || len(a.segments) == 0
}

// Segments returns a copy of the segment sequence.
func (a *StackAddr) Segments() []Segment {
	out := make([]Segment, 0, len(a.segments))
	for _, s := range a.segments {
		out = append(out, cloneSegment(s))
	}
	return out
}

// Clone returns an independent deep copy of the address.
func (a *StackAddr) Clone() *StackAddr {
	return &StackAddr{segments: a.Segments()}
}

// Contains reports whether any position holds an exact structural match of
// the given segment.
func (a *StackAddr) Contains(target Segment) bool {
	for _, s := range a.segments {
		if SegmentsEqual(s, target) {
			return true
		}
	}
	return false
}

// Supports reports whether the address holds a protocol segment of the
// same variant, ignoring payload: an address with any IPv4 segment
// supports IP4 regardless of which address it carries.
func (a *StackAddr) Supports(p Protocol) bool {
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok && proto.Code == p.Code {
			return true
		}
	}
	return false
}

// Replace replaces the first structurally-equal match of old with new.
// It reports whether a replacement occurred.
func (a *StackAddr) Replace(old, new Segment) bool {
	for i, s := range a.segments {
		if SegmentsEqual(s, old) {
			a.segments[i] = cloneSegment(new)
			return true
		}
	}
	return false
}

// ReplaceAll replaces every structurally-equal match of old with new and
// returns the number of replacements made.
func (a *StackAddr) ReplaceAll(old, new Segment) int {
	count := 0
	for i, s := range a.segments {
		if SegmentsEqual(s, old) {
			a.segments[i] = cloneSegment(new)
			count++
		}
	}
	return count
}

// Remove removes the first structurally-equal match of target. It reports
// whether an element was removed.
func (a *StackAddr) Remove(target Segment) bool {
	for i, s := range a.segments {
		if SegmentsEqual(s, target) {
			a.segments = append(a.segments[:i], a.segments[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll removes every structurally-equal match of target and returns
// the number of elements removed.
func (a *StackAddr) RemoveAll(target Segment) int {
	kept := a.segments[:0]
	count := 0
	for _, s := range a.segments {
		if SegmentsEqual(s, target) {
			count++
			continue
		}
		kept = append(kept, s)
	}
	a.segments = kept
	return count
}

// Resolve rewrites every DNS segment (dns, dns4, dns6) in place to an IP
// segment carrying the supplied address, chosen as ip4 or ip6 by the
// address family. Non-DNS segments are untouched. When multiple DNS
// segments exist they all receive the same address — the rewrite is bulk,
// not selective. Returns the number of segments rewritten.
func (a *StackAddr) Resolve(addr netip.Addr) int {
	count := 0
	for i, s := range a.segments {
		proto, ok := s.(Protocol)
		if !ok {
			continue
		}
		switch proto.Code {
		case CodeDNS, CodeDNS4, CodeDNS6:
			a.segments[i] = IP(addr)
			count++
		}
	}
	return count
}

// IP returns the address of the first ip4/ip6 segment, scanning from the
// head.
func (a *StackAddr) IP() (netip.Addr, bool) {
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok {
			switch proto.Code {
			case CodeIP4, CodeIP6:
				return proto.Addr, true
			}
		}
	}
	return netip.Addr{}, false
}

// Name returns the name of the first dns/dns4/dns6 segment, scanning from
// the head.
func (a *StackAddr) Name() (string, bool) {
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok {
			switch proto.Code {
			case CodeDNS, CodeDNS4, CodeDNS6:
				return proto.Name, true
			}
		}
	}
	return "", false
}

// MAC returns the hardware address of the first mac segment, scanning from
// the head.
func (a *StackAddr) MAC() (net.HardwareAddr, bool) {
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok && proto.Code == CodeMAC {
			hw := make(net.HardwareAddr, 6)
			copy(hw, proto.HW[:])
			return hw, true
		}
	}
	return nil, false
}

// Port returns the port of the first port-bearing transport or application
// segment, scanning from the tail so the outermost transport wins. A QUIC
// marker with no explicit port resolves to 443 by convention.
func (a *StackAddr) Port() (uint16, bool) {
	for i := len(a.segments) - 1; i >= 0; i-- {
		proto, ok := a.segments[i].(Protocol)
		if !ok {
			continue
		}
		switch proto.Code {
		case CodeTCP, CodeUDP, CodeWS, CodeWSS, CodeWebTransport:
			return proto.Port, true
		case CodeQUIC:
			return 443, true
		}
	}
	return 0, false
}

// Identity returns the identity bytes of the first identity segment,
// scanning from the head.
func (a *StackAddr) Identity() ([]byte, bool) {
	for _, s := range a.segments {
		if id, ok := s.(Identity); ok {
			return append([]byte(nil), id.IDBytes()...), true
		}
	}
	return nil, false
}

// Transport folds the segment sequence into a combined transport value.
// A tcp segment immediately followed by a tls marker yields TlsTcp; a udp
// segment immediately followed by a quic marker yields Quic; ws, wss and
// wtr map directly. A bare tls or quic marker with no preceding port is
// ignored. This is a one-pass left-to-right fold over the enumerated
// pairings, not a full layering validator.
func (a *StackAddr) Transport() (TransportProtocol, bool) {
	for i, s := range a.segments {
		proto, ok := s.(Protocol)
		if !ok {
			continue
		}
		switch proto.Code {
		case CodeTCP:
			if next, ok := a.protocolAt(i + 1); ok && next.Code == CodeTLS {
				return TransportProtocol{Kind: TransportTLSTCP, Port: proto.Port}, true
			}
			return TransportProtocol{Kind: TransportTCP, Port: proto.Port}, true
		case CodeUDP:
			if next, ok := a.protocolAt(i + 1); ok && next.Code == CodeQUIC {
				return TransportProtocol{Kind: TransportQUIC, Port: proto.Port}, true
			}
			return TransportProtocol{Kind: TransportUDP, Port: proto.Port}, true
		case CodeWS:
			return TransportProtocol{Kind: TransportWS, Port: proto.Port}, true
		case CodeWSS:
			return TransportProtocol{Kind: TransportWSS, Port: proto.Port}, true
		case CodeWebTransport:
			return TransportProtocol{Kind: TransportWebTransport, Port: proto.Port}, true
		}
	}
	return TransportProtocol{}, false
}

// protocolAt returns the protocol segment at index i, if one is there.
func (a *StackAddr) protocolAt(i int) (Protocol, bool) {
	if i < 0 || i >= len(a.segments) {
		return Protocol{}, false
	}
	proto, ok := a.segments[i].(Protocol)
	return proto, ok
}

// HostPort returns the host (an IP literal if present, otherwise the first
// DNS name) and the port. It fails with a missing-part error when either
// is absent.
func (a *StackAddr) HostPort() (string, uint16, error) {
	port, ok := a.Port()
	if !ok {
		return "", 0, newAddrError("hostport", "port", ErrMissingPart)
	}
	if ip, ok := a.IP(); ok {
		return ip.String(), port, nil
	}
	if name, ok := a.Name(); ok {
		return name, port, nil
	}
	return "", 0, newAddrError("hostport", "host", ErrMissingPart)
}

// Resolved reports whether the address contains at least one ip4 or ip6
// segment.
func (a *StackAddr) Resolved() bool {
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok {
			switch proto.Code {
			case CodeIP4, CodeIP6:
				return true
			}
		}
	}
	return false
}

// Equal reports element-wise structural equality of the two segment
// sequences, in order.
func (a *StackAddr) Equal(other *StackAddr) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.segments) != len(other.segments) {
		return false
	}
	for i, s := range a.segments {
		if !SegmentsEqual(s, other.segments[i]) {
			return false
		}
	}
	return true
}

// Compare defines a total order over addresses consistent with Equal:
// element-wise segment order, with a shorter prefix sorting first.
func (a *StackAddr) Compare(other *StackAddr) int {
	n := len(a.segments)
	if len(other.segments) < n {
		n = len(other.segments)
	}
	for i := 0; i < n; i++ {
		if c := segmentCompare(a.segments[i], other.segments[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a.segments) < len(other.segments):
		return -1
	case len(a.segments) > len(other.segments):
		return 1
	default:
		return 0
	}
}

// Hash returns a structural FNV-64a hash of the address: equal addresses
// hash equally. Each segment contributes its kind tag and canonical string,
// so a path segment spelled like a marker keyword still hashes apart from
// the marker.
func (a *StackAddr) Hash() uint64 {
	h := fnv.New64a()
	for _, s := range a.segments {
		h.Write([]byte{byte(segmentKindRank(s))})
		h.Write([]byte(s.String()))
	}
	return h.Sum64()
}

// String renders the canonical slash-delimited form by concatenating each
// segment's rendering. The empty address renders as the empty string.
func (a *StackAddr) String() string {
	var sb []byte
	for _, s := range a.segments {
		sb = append(sb, s.String()...)
	}
	return string(sb)
}
