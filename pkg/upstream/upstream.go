package upstream

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/burrowdns/burrow/pkg/metrics"
)

// Result is the outcome of a single upstream exchange. Provider failures
// are carried in Err, never returned as a Go error; the caller decides
// whether another provider gets a turn.
type Result struct {
	Addrs []net.IP
	Err   error
}

// Client queries one upstream DNS server over a connection-oriented
// transport. It is stateless and safe for concurrent use.
type Client struct {
	server string
	client *dns.Client
}

// NewClient creates a client for the given upstream address. Addresses
// without an explicit port default to 53.
func NewClient(server string, timeout time.Duration) *Client {
	return &Client{
		server: withDefaultPort(server),
		client: &dns.Client{
			Net:     "tcp",
			Timeout: timeout,
		},
	}
}

// Server returns the normalized upstream address
func (c *Client) Server() string {
	return c.server
}

// Query sends one recursive A query for name and extracts the A records
// from the reply. Transport errors, non-success rcodes and malformed
// replies all surface as Result.Err.
func (c *Client) Query(ctx context.Context, name string) Result {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	msg.RecursionDesired = true

	reply, _, err := c.client.ExchangeContext(ctx, msg, c.server)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(c.server).Inc()
		return Result{Err: fmt.Errorf("exchange with %s: %w", c.server, err)}
	}

	if reply.Rcode != dns.RcodeSuccess {
		metrics.UpstreamErrorsTotal.WithLabelValues(c.server).Inc()
		return Result{Err: fmt.Errorf("upstream %s answered %s", c.server, dns.RcodeToString[reply.Rcode])}
	}

	var addrs []net.IP
	for _, rr := range reply.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A)
		}
	}

	return Result{Addrs: addrs}
}

func withDefaultPort(server string) string {
	if _, _, err := net.SplitHostPort(server); err != nil {
		return net.JoinHostPort(server, "53")
	}
	return server
}
