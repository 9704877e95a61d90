package stackaddr

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/sirupsen/logrus"
)

// Resolver is the name-resolution collaborator: given a lookup network
// ("ip", "ip4" or "ip6") and a host name, it returns the concrete
// addresses the host resolves to. *net.Resolver satisfies it, so the
// system resolver is the default and anything else can be swapped in.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

var _ Resolver = (*net.Resolver)(nil)

// SocketAddrs resolves the address to concrete socket endpoints using the
// system resolver. See SocketAddrsWith.
func (a *StackAddr) SocketAddrs(ctx context.Context) ([]netip.AddrPort, error) {
	return a.SocketAddrsWith(ctx, net.DefaultResolver)
}

// SocketAddrsWith resolves the address to concrete socket endpoints with
// the given resolver. If an IP segment is present the resolver is not
// consulted; otherwise the first DNS segment is looked up, with dns4/dns6
// family hints narrowing the lookup network. The call is a single
// synchronous resolution with no retry or timeout of its own — callers
// wanting those wrap the context themselves.
func (a *StackAddr) SocketAddrsWith(ctx context.Context, r Resolver) ([]netip.AddrPort, error) {
	host, port, err := a.HostPort()
	if err != nil {
		return nil, err
	}

	if ip, ok := a.IP(); ok {
		return []netip.AddrPort{netip.AddrPortFrom(ip, port)}, nil
	}

	network := "ip"
	for _, s := range a.segments {
		if proto, ok := s.(Protocol); ok {
			if proto.Code == CodeDNS4 {
				network = "ip4"
			} else if proto.Code == CodeDNS6 {
				network = "ip6"
			}
			if proto.IsAddress() {
				break
			}
		}
	}

	addrs, err := r.LookupNetIP(ctx, network, host)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "SocketAddrsWith",
			"host":     host,
			"network":  network,
		}).WithError(err).Debug("Name resolution failed")
		return nil, &AddrError{Op: "resolve", Field: host, Err: fmt.Errorf("%w: %v", ErrResolutionFailed, err)}
	}

	out := make([]netip.AddrPort, 0, len(addrs))
	for _, ip := range addrs {
		out = append(out, netip.AddrPortFrom(ip, port))
	}
	return out, nil
}
