package stackaddr

import (
	"context"
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver records the lookup it receives and returns canned results.
type fakeResolver struct {
	addrs   []netip.Addr
	err     error
	network string
	host    string
	calls   int
}

func (f *fakeResolver) LookupNetIP(_ context.Context, network, host string) ([]netip.Addr, error) {
	f.calls++
	f.network = network
	f.host = host
	return f.addrs, f.err
}

func TestSocketAddrsWith(t *testing.T) {
	ctx := context.Background()

	t.Run("dns lookup", func(t *testing.T) {
		r := &fakeResolver{addrs: []netip.Addr{
			netip.MustParseAddr("93.184.216.34"),
			netip.MustParseAddr("2606:2800:220:1::1"),
		}}
		addr := New(DNS("example.com"), TCP(443), TLS())

		eps, err := addr.SocketAddrsWith(ctx, r)
		require.NoError(t, err)
		require.Len(t, eps, 2)
		assert.Equal(t, "example.com", r.host)
		assert.Equal(t, "ip", r.network)
		assert.Equal(t, netip.AddrPortFrom(netip.MustParseAddr("93.184.216.34"), 443), eps[0])
	})

	t.Run("family hints narrow the lookup", func(t *testing.T) {
		r := &fakeResolver{addrs: []netip.Addr{netip.MustParseAddr("10.0.0.1")}}
		_, err := New(DNS4("example.com"), TCP(80)).SocketAddrsWith(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "ip4", r.network)

		r = &fakeResolver{addrs: []netip.Addr{netip.MustParseAddr("::1")}}
		_, err = New(DNS6("example.com"), TCP(80)).SocketAddrsWith(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, "ip6", r.network)
	})

	t.Run("ip literal skips the resolver", func(t *testing.T) {
		r := &fakeResolver{err: errors.New("should not be called")}
		addr := New(IP4(netip.MustParseAddr("127.0.0.1")), TCP(8080))

		eps, err := addr.SocketAddrsWith(ctx, r)
		require.NoError(t, err)
		require.Len(t, eps, 1)
		assert.Equal(t, netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), 8080), eps[0])
		assert.Zero(t, r.calls, "resolver must not be consulted for an IP literal")
	})

	t.Run("missing port", func(t *testing.T) {
		r := &fakeResolver{}
		_, err := New(DNS("example.com")).SocketAddrsWith(ctx, r)
		assert.True(t, errors.Is(err, ErrMissingPart))
		assert.Zero(t, r.calls)
	})

	t.Run("missing host", func(t *testing.T) {
		r := &fakeResolver{}
		_, err := New(TCP(80)).SocketAddrsWith(ctx, r)
		assert.True(t, errors.Is(err, ErrMissingPart))
	})

	t.Run("lookup failure wraps resolution error", func(t *testing.T) {
		r := &fakeResolver{err: errors.New("NXDOMAIN")}
		_, err := New(DNS("missing.example"), TCP(80)).SocketAddrsWith(ctx, r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrResolutionFailed))

		var addrErr *AddrError
		require.True(t, errors.As(err, &addrErr))
		assert.Equal(t, "resolve", addrErr.Op)
		assert.Equal(t, "missing.example", addrErr.Field)
	})
}
