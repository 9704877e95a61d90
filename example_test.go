package stackaddr_test

import (
	"fmt"
	"net/netip"

	"github.com/foctal/stackaddr"
)

func ExampleParse() {
	addr, err := stackaddr.Parse("/ip4/127.0.0.1/tcp/443/tls/http")
	if err != nil {
		panic(err)
	}

	port, _ := addr.Port()
	fmt.Println(addr)
	fmt.Println(addr.Len(), "segments, port", port)
	// Output:
	// /ip4/127.0.0.1/tcp/443/tls/http
	// 4 segments, port 443
}

func ExampleStackAddr_builder() {
	addr := stackaddr.Empty().
		WithProtocol(stackaddr.IP4(netip.MustParseAddr("192.168.10.10"))).
		WithProtocol(stackaddr.UDP(4433)).
		WithProtocol(stackaddr.QUIC())

	fmt.Println(addr)
	// Output: /ip4/192.168.10.10/udp/4433/quic
}

func ExampleStackAddr_Resolve() {
	addr := stackaddr.WithName("example.com").
		WithProtocol(stackaddr.TCP(443))

	addr.Resolve(netip.MustParseAddr("93.184.216.34"))
	fmt.Println(addr, addr.Resolved())
	// Output: /ip4/93.184.216.34/tcp/443 true
}

func ExampleStackAddr_Transport() {
	addr := stackaddr.MustParse("/ip4/10.0.0.1/tcp/443/tls")

	tp, _ := addr.Transport()
	fmt.Println(tp, tp.Secure())
	// Output: tls/tcp/443 true
}

func ExampleParseStrict() {
	_, err := stackaddr.ParseStrict("/downloads/images")
	fmt.Println(err)

	addr, _ := stackaddr.Parse("/downloads/images")
	fmt.Println(addr.Len(), "path segments")
	// Output:
	// stackaddr parse downloads: unknown protocol
	// 2 path segments
}
