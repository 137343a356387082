package resolver

import (
	"context"
	"net"

	"github.com/rs/zerolog"

	"github.com/burrowdns/burrow/pkg/hosts"
	"github.com/burrowdns/burrow/pkg/log"
	"github.com/burrowdns/burrow/pkg/metrics"
	"github.com/burrowdns/burrow/pkg/upstream"
)

// TTL applied to every answer, in seconds
const TTL = 300

// Answer is one resolved address for a query
type Answer struct {
	Name string
	Addr net.IP
	TTL  uint32
}

// Source is a synchronous hostname table: the discovery snapshot or the
// local table.
type Source interface {
	Lookup(name string) (net.IP, bool)
}

// Upstream is a recursive DNS provider consulted when no source matches
type Upstream interface {
	Query(ctx context.Context, name string) upstream.Result
}

// Options wires the engine's inputs. Any of them may be nil; a nil input
// is simply skipped in the precedence chain.
type Options struct {
	Discovery Source
	Local     Source
	Primary   Upstream
	Secondary Upstream
}

// Engine resolves hostnames with fixed precedence: discovery shadows the
// local table, the local table shadows both upstreams, and the secondary
// upstream is consulted only when the primary produced nothing. Name
// collisions across sources are expected in development networks; the
// precedence order is the contract that makes them deterministic.
type Engine struct {
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates a resolution engine
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:   opts,
		logger: log.WithComponent("resolver"),
	}
}

// Resolve returns the answers for one hostname, possibly none. A miss
// everywhere is not an error; the caller responds with zero records.
func (e *Engine) Resolve(ctx context.Context, name string) []Answer {
	name = hosts.Normalize(name)

	if e.opts.Discovery != nil {
		if ip, ok := e.opts.Discovery.Lookup(name); ok {
			metrics.QueriesTotal.WithLabelValues("discovery").Inc()
			e.logger.Debug().Str("query", name).Str("source", "discovery").Msg("Resolved")
			return []Answer{{Name: name, Addr: ip, TTL: TTL}}
		}
	}

	if e.opts.Local != nil {
		if ip, ok := e.opts.Local.Lookup(name); ok {
			metrics.QueriesTotal.WithLabelValues("local").Inc()
			e.logger.Debug().Str("query", name).Str("source", "local").Msg("Resolved")
			return []Answer{{Name: name, Addr: ip, TTL: TTL}}
		}
	}

	if e.opts.Primary != nil {
		res := e.opts.Primary.Query(ctx, name)
		if res.Err != nil {
			e.logger.Warn().Err(res.Err).Str("query", name).Str("upstream", "primary").Msg("Upstream query failed")
		}
		if len(res.Addrs) > 0 {
			metrics.QueriesTotal.WithLabelValues("primary").Inc()
			e.logger.Debug().Str("query", name).Str("source", "primary").Int("answers", len(res.Addrs)).Msg("Resolved")
			return answersFrom(name, res.Addrs)
		}
	}

	if e.opts.Secondary != nil {
		res := e.opts.Secondary.Query(ctx, name)
		if res.Err != nil {
			e.logger.Warn().Err(res.Err).Str("query", name).Str("upstream", "secondary").Msg("Upstream query failed")
		}
		if len(res.Addrs) > 0 {
			metrics.QueriesTotal.WithLabelValues("secondary").Inc()
			e.logger.Debug().Str("query", name).Str("source", "secondary").Int("answers", len(res.Addrs)).Msg("Resolved")
			return answersFrom(name, res.Addrs)
		}
	}

	metrics.QueriesTotal.WithLabelValues("none").Inc()
	e.logger.Debug().Str("query", name).Msg("No answers from any source")
	return nil
}

func answersFrom(name string, addrs []net.IP) []Answer {
	answers := make([]Answer, 0, len(addrs))
	for _, addr := range addrs {
		answers = append(answers, Answer{Name: name, Addr: addr, TTL: TTL})
	}
	return answers
}
