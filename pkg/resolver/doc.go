/*
Package resolver implements Burrow's name resolution engine.

The resolver answers A-record questions by consulting a fixed chain of sources
in strict precedence order: container discovery first, then the static local
table, then the primary upstream server, then the secondary. The first source
that produces an address wins and later sources are never consulted, so a
developer can always predict which answer a query will get.

# Architecture

	┌─────────────────────────────────────────────────────────────┐
	│                     Resolution Engine                        │
	└─────┬───────────────────────────────────────────────────────┘
	      │
	      ▼
	┌──────────────────────────────────────────────────────────────┐
	│                      Precedence Chain                        │
	│                                                               │
	│   1. Discovery   (containers found via Docker labels)        │
	│   2. Local       (static hostname table from config)         │
	│   3. Primary     (upstream DNS server, TCP)                  │
	│   4. Secondary   (upstream DNS server, TCP, failover)        │
	│                                                               │
	└──────────────────────────────────────────────────────────────┘

## Resolution Flow

	Query: api.local
	  ↓
	1. Normalize name (lowercase, strip trailing dot)
	  ↓
	2. Discovery lookup
	   hit → return single answer, done
	  ↓
	3. Local table lookup
	   hit → return single answer, done
	  ↓
	4. Primary upstream query
	   one or more answers → return them, done
	   error or empty → fall through
	  ↓
	5. Secondary upstream query
	   one or more answers → return them, done
	  ↓
	6. No answers (caller responds with an empty NOERROR)

The secondary is consulted only when the primary errored or returned zero
answers. A primary that answers, even with a single record, ends the chain.

# Core Components

## Source Interface

Discovery and the local table both satisfy Source:

	type Source interface {
		Lookup(name string) (net.IP, bool)
	}

A Source is an in-memory lookup. It never blocks on the network, so the first
two steps of the chain are cheap even when upstreams are slow.

## Upstream Interface

Upstream servers satisfy Upstream:

	type Upstream interface {
		Query(ctx context.Context, name string) upstream.Result
	}

The Result carries either addresses or an error, never both meaningfully.
An upstream error is logged and absorbed here; it only triggers failover,
it never fails the client query.

## Answer

Every answer carries the queried name, an IPv4 address, and a fixed TTL:

	type Answer struct {
		Name string
		Addr net.IP
		TTL  uint32
	}

Local and discovery answers use the package TTL constant (300 seconds).
Upstream answers are rewritten to the same TTL rather than passing the
remote value through, so cache behavior is uniform regardless of source.

# Usage

	engine := resolver.NewEngine(resolver.Options{
		Discovery: dockerSource,                                  // may be nil
		Local:     localTable,                                    // may be nil
		Primary:   upstream.NewClient("1.1.1.1:53", 5*time.Second),
		Secondary: upstream.NewClient("8.8.8.8:53", 5*time.Second),
	})

	answers := engine.Resolve(ctx, "api.local.")
	for _, a := range answers {
		fmt.Printf("%s → %s (ttl %d)\n", a.Name, a.Addr, a.TTL)
	}

	// Output:
	// api.local → 172.18.0.5 (ttl 300)

Any Options field may be nil; a nil source or upstream is skipped. An engine
with every field nil resolves nothing and returns nil for every query, which
is still a valid (if unhelpful) configuration.

# Metrics

Each resolved query increments burrow_queries_total labeled with the source
that answered: "discovery", "local", "primary", "secondary", or "none".
Watching that counter is the quickest way to see whether queries are being
served from containers or leaking to upstreams.

# See Also

  - pkg/discovery - Docker container source
  - pkg/hosts - static local table source
  - pkg/upstream - TCP upstream clients
  - pkg/server - UDP listener that drives the engine
*/
package resolver
