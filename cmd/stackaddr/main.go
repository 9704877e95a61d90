package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/foctal/stackaddr"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stackaddr <address>",
		Short: "Parse and inspect layered stack addresses",
		Long: `Parses a slash-delimited stack address such as
/ip4/127.0.0.1/tcp/443/tls/http and prints its segments and derived
properties. Exits non-zero if the address does not parse.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runParse,
	}
	rootCmd.Flags().Bool("strict", false, "Reject unrecognized keywords instead of treating them as paths")
	rootCmd.Flags().Bool("json", false, "Print the structured JSON form")
	rootCmd.Flags().Bool("resolve", false, "Resolve the host/port pair to socket addresses")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	asJSON, _ := cmd.Flags().GetBool("json")
	resolve, _ := cmd.Flags().GetBool("resolve")

	policy := stackaddr.PolicyPermissive
	if strict {
		policy = stackaddr.PolicyStrict
	}

	addr, err := stackaddr.ParseWithPolicy(args[0], policy)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(addr, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Address: %s\n", addr)
	fmt.Printf("Segments: %d\n", addr.Len())
	for i, seg := range addr.Segments() {
		fmt.Printf("  [%d] %-9s %s\n", i, segmentKind(seg), seg)
	}

	if ip, ok := addr.IP(); ok {
		fmt.Printf("IP: %s\n", ip)
	}
	if name, ok := addr.Name(); ok {
		fmt.Printf("Name: %s\n", name)
	}
	if hw, ok := addr.MAC(); ok {
		fmt.Printf("MAC: %s\n", hw)
	}
	if port, ok := addr.Port(); ok {
		fmt.Printf("Port: %d\n", port)
	}
	if tp, ok := addr.Transport(); ok {
		fmt.Printf("Transport: %s (secure: %t)\n", tp, tp.Secure())
	}
	fmt.Printf("Resolved: %t\n", addr.Resolved())

	if resolve {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		endpoints, err := addr.SocketAddrs(ctx)
		if err != nil {
			return err
		}
		for _, ep := range endpoints {
			fmt.Printf("Endpoint: %s\n", ep)
		}
	}
	return nil
}

func segmentKind(seg stackaddr.Segment) string {
	switch seg.(type) {
	case stackaddr.Protocol:
		return "protocol"
	case stackaddr.Identity:
		return "identity"
	case stackaddr.Path:
		return "path"
	case stackaddr.Metadata:
		return "metadata"
	default:
		return "unknown"
	}
}
