package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/miekg/dns"
	"github.com/rs/zerolog"

	"github.com/burrowdns/burrow/pkg/log"
	"github.com/burrowdns/burrow/pkg/metrics"
	"github.com/burrowdns/burrow/pkg/resolver"
)

// Resolver produces the answers for one hostname query
type Resolver interface {
	Resolve(ctx context.Context, name string) []resolver.Answer
}

// Handle owns one bound UDP listener and every resource whose lifetime
// is tied to it: the discovery refresh task and the admin server ride
// along as owned closers. A reload never reuses a handle; it closes the
// old one and opens a new one.
type Handle struct {
	id        string
	conn      net.PacketConn
	dnsServer *dns.Server
	owned     []io.Closer
	closeOnce sync.Once
	closeErr  error
	logger    zerolog.Logger
}

// Listen binds host:port over UDP and serves queries against res. The
// bind happens synchronously so a port conflict surfaces here as an
// error, never in a background goroutine. Owned closers are closed with
// the handle, after the listener shut down.
func Listen(host string, port int, res Resolver, owned ...io.Closer) (*Handle, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind udp %s: %w", addr, err)
	}

	h := &Handle{
		id:    uuid.New().String()[:8],
		conn:  conn,
		owned: owned,
	}
	h.logger = log.WithInstance("dns", h.id)

	mux := dns.NewServeMux()
	mux.HandleFunc(".", h.handleQuery(res))

	h.dnsServer = &dns.Server{
		PacketConn: conn,
		Handler:    mux,
	}

	go func() {
		if err := h.dnsServer.ActivateAndServe(); err != nil {
			h.logger.Error().Err(err).Msg("DNS server error")
		}
	}()

	h.logger.Info().Str("addr", conn.LocalAddr().String()).Msg("DNS server listening")
	return h, nil
}

// ID returns the instance id carried in this handle's log events
func (h *Handle) ID() string {
	return h.id
}

// Addr returns the actual bound address
func (h *Handle) Addr() net.Addr {
	return h.conn.LocalAddr()
}

// Close shuts the listener down, then closes the owned resources.
// Idempotent; repeat calls return the first result.
func (h *Handle) Close() error {
	h.closeOnce.Do(func() {
		h.logger.Info().Msg("DNS server stopping")

		// Shutdown closes the packet conn
		if err := h.dnsServer.Shutdown(); err != nil {
			h.closeErr = fmt.Errorf("failed to shut down dns server: %w", err)
		}

		for _, c := range h.owned {
			if err := c.Close(); err != nil && h.closeErr == nil {
				h.closeErr = err
			}
		}

		h.logger.Info().Msg("DNS server stopped")
	})
	return h.closeErr
}

// handleQuery serves one inbound datagram. miekg/dns runs each call on
// its own goroutine; queries are independent and unordered.
func (h *Handle) handleQuery(res Resolver) dns.HandlerFunc {
	return func(w dns.ResponseWriter, req *dns.Msg) {
		timer := metrics.NewTimer()
		defer timer.ObserveDuration(metrics.QueryDuration)

		msg := &dns.Msg{}
		msg.SetReply(req)
		msg.Authoritative = true

		// First question only. Address questions get resolved answers;
		// anything else gets a well-formed response with zero answers.
		if len(req.Question) > 0 {
			q := req.Question[0]
			h.logger.Debug().Str("query", q.Name).Uint16("type", q.Qtype).Msg("Query received")

			if q.Qtype == dns.TypeA {
				for _, ans := range res.Resolve(context.Background(), q.Name) {
					msg.Answer = append(msg.Answer, &dns.A{
						Hdr: dns.RR_Header{
							Name:   q.Name,
							Rrtype: dns.TypeA,
							Class:  dns.ClassINET,
							Ttl:    ans.TTL,
						},
						A: ans.Addr,
					})
				}
			}
		}

		if err := w.WriteMsg(msg); err != nil {
			h.logger.Error().Err(err).Msg("Failed to write DNS response")
		}
	}
}
