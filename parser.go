package stackaddr

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ParsePolicy selects how the parser treats a token that is not a
// recognized keyword.
type ParsePolicy uint8

const (
	// PolicyPermissive turns unrecognized tokens into Path segments. This
	// is the primary policy: it admits arbitrary trailing resource paths
	// such as /downloads/images without an escape syntax.
	PolicyPermissive ParsePolicy = iota
	// PolicyStrict rejects unrecognized tokens with ErrUnknownProtocol,
	// matching producers that only ever emit known keywords.
	PolicyStrict
)

// Parse parses a canonical slash-delimited address string under the
// permissive policy. The empty string (or a string of only slashes) yields
// the empty address. On failure no partial address is returned.
func Parse(s string) (*StackAddr, error) {
	return ParseWithPolicy(s, PolicyPermissive)
}

// ParseStrict parses under the strict policy, where an unrecognized
// keyword is a hard ErrUnknownProtocol failure.
func ParseStrict(s string) (*StackAddr, error) {
	return ParseWithPolicy(s, PolicyStrict)
}

// MustParse parses under the permissive policy and panics on failure.
// Intended for constant initialization and tests.
func MustParse(s string) *StackAddr {
	a, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("stackaddr: MustParse(%q): %v", s, err))
	}
	return a
}

// ParseWithPolicy parses a canonical address string, consuming tokens
// left-to-right: each recognized keyword greedily consumes the following
// tokens it requires, with no backtracking. A keyword whose required token
// is absent always fails with ErrMissingPart, under either policy.
func ParseWithPolicy(s string, policy ParsePolicy) (*StackAddr, error) {
	logrus.WithFields(logrus.Fields{
		"function": "ParseWithPolicy",
		"address":  s,
	}).Debug("Parsing stack address")

	var tokens []string
	for _, tok := range strings.Split(s, "/") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	addr := Empty()
	for i := 0; i < len(tokens); i++ {
		seg, consumed, err := parseSegment(tokens, i, policy)
		if err != nil {
			return nil, err
		}
		addr.segments = append(addr.segments, seg)
		i += consumed
	}

	logrus.WithFields(logrus.Fields{
		"function": "ParseWithPolicy",
		"segments": addr.Len(),
	}).Debug("Parsed stack address")
	return addr, nil
}

// parseSegment consumes one segment starting at tokens[i] and returns it
// together with the number of extra tokens consumed beyond the keyword.
func parseSegment(tokens []string, i int, policy ParsePolicy) (Segment, int, error) {
	keyword := tokens[i]

	// next fetches the argument token n positions past the keyword.
	next := func(n int, field string) (string, error) {
		if i+n >= len(tokens) {
			return "", newAddrError("parse", field, ErrMissingPart)
		}
		return tokens[i+n], nil
	}

	switch keyword {
	case "mac":
		val, err := next(1, "mac address")
		if err != nil {
			return nil, 0, err
		}
		p, err := ParseMACProtocol(val)
		if err != nil {
			return nil, 0, err
		}
		return p, 1, nil

	case "ip4":
		val, err := next(1, "ip4 address")
		if err != nil {
			return nil, 0, err
		}
		ip, perr := netip.ParseAddr(val)
		if perr != nil || !ip.Is4() {
			return nil, 0, newAddrError("parse", "ip4 address", ErrInvalidAddress)
		}
		return IP4(ip), 1, nil

	case "ip6":
		val, err := next(1, "ip6 address")
		if err != nil {
			return nil, 0, err
		}
		ip, perr := netip.ParseAddr(val)
		if perr != nil || !ip.Is6() {
			return nil, 0, newAddrError("parse", "ip6 address", ErrInvalidAddress)
		}
		return IP6(ip), 1, nil

	case "dns":
		val, err := next(1, "dns name")
		if err != nil {
			return nil, 0, err
		}
		return DNS(val), 1, nil

	case "dns4":
		val, err := next(1, "dns4 name")
		if err != nil {
			return nil, 0, err
		}
		return DNS4(val), 1, nil

	case "dns6":
		val, err := next(1, "dns6 name")
		if err != nil {
			return nil, 0, err
		}
		return DNS6(val), 1, nil

	case "tcp":
		port, err := parsePortToken(next, "tcp port")
		if err != nil {
			return nil, 0, err
		}
		return TCP(port), 1, nil

	case "udp":
		port, err := parsePortToken(next, "udp port")
		if err != nil {
			return nil, 0, err
		}
		return UDP(port), 1, nil

	case "ws":
		port, err := parsePortToken(next, "ws port")
		if err != nil {
			return nil, 0, err
		}
		return WS(port), 1, nil

	case "wss":
		port, err := parsePortToken(next, "wss port")
		if err != nil {
			return nil, 0, err
		}
		return WSS(port), 1, nil

	case "webtransport", "wtr":
		port, err := parsePortToken(next, "webtransport port")
		if err != nil {
			return nil, 0, err
		}
		return WebTransport(port), 1, nil

	case "tls":
		return TLS(), 0, nil
	case "quic":
		return QUIC(), 0, nil
	case "http":
		return HTTP(), 0, nil
	case "https":
		return HTTPS(), 0, nil
	case "webrtc":
		return WebRTC(), 0, nil

	case "onion":
		val, err := next(1, "onion address")
		if err != nil {
			return nil, 0, err
		}
		return Onion(val), 1, nil

	case "custom":
		val, err := next(1, "custom name")
		if err != nil {
			return nil, 0, err
		}
		return Custom(val), 1, nil

	case "node":
		val, err := next(1, "node id")
		if err != nil {
			return nil, 0, err
		}
		id, derr := decodeBase32(val)
		if derr != nil {
			return nil, 0, newAddrError("parse", "base32 in node", ErrInvalidEncoding)
		}
		return Identity{Code: IdentityNode, ID: id}, 1, nil

	case "peer":
		val, err := next(1, "peer id")
		if err != nil {
			return nil, 0, err
		}
		id, derr := decodeBase32(val)
		if derr != nil {
			return nil, 0, newAddrError("parse", "base32 in peer", ErrInvalidEncoding)
		}
		return Identity{Code: IdentityPeer, ID: id}, 1, nil

	case "uuid":
		val, err := next(1, "uuid value")
		if err != nil {
			return nil, 0, err
		}
		u, perr := uuid.Parse(val)
		if perr != nil {
			return nil, 0, newAddrError("parse", "uuid", ErrInvalidEncoding)
		}
		return UUID(u), 1, nil

	case "identity":
		kind, err := next(1, "identity kind")
		if err != nil {
			return nil, 0, err
		}
		val, err := next(2, "identity value")
		if err != nil {
			return nil, 0, err
		}
		id, derr := decodeBase32(val)
		if derr != nil {
			return nil, 0, newAddrError("parse", "base32 in identity", ErrInvalidEncoding)
		}
		return Identity{Code: IdentityCustom, Kind: kind, ID: id}, 2, nil

	case "meta":
		key, err := next(1, "meta key")
		if err != nil {
			return nil, 0, err
		}
		value, err := next(2, "meta value")
		if err != nil {
			return nil, 0, err
		}
		return Meta(key, value), 2, nil

	default:
		if policy == PolicyStrict {
			return nil, 0, newAddrError("parse", keyword, ErrUnknownProtocol)
		}
		return Path(keyword), 0, nil
	}
}

// parsePortToken consumes one token and parses it as an unsigned 16-bit port.
func parsePortToken(next func(int, string) (string, error), field string) (uint16, error) {
	val, err := next(1, field)
	if err != nil {
		return 0, err
	}
	port, perr := strconv.ParseUint(val, 10, 16)
	if perr != nil {
		return 0, newAddrError("parse", field, ErrInvalidPort)
	}
	return uint16(port), nil
}
