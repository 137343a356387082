package resolver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/burrowdns/burrow/pkg/upstream"
)

type staticSource map[string]string

func (s staticSource) Lookup(name string) (net.IP, bool) {
	addr, ok := s[name]
	if !ok {
		return nil, false
	}
	return net.ParseIP(addr).To4(), true
}

type spyUpstream struct {
	addrs []string
	err   error
	calls int
}

func (u *spyUpstream) Query(ctx context.Context, name string) upstream.Result {
	u.calls++
	if u.err != nil {
		return upstream.Result{Err: u.err}
	}
	var ips []net.IP
	for _, addr := range u.addrs {
		ips = append(ips, net.ParseIP(addr).To4())
	}
	return upstream.Result{Addrs: ips}
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		discovery staticSource
		local     staticSource
		primary   *spyUpstream
		secondary *spyUpstream
		query     string
		want      []string
	}{
		{
			name:      "discovery shadows local and upstream",
			discovery: staticSource{"api.local": "10.0.0.5"},
			local:     staticSource{"api.local": "127.0.0.1"},
			primary:   &spyUpstream{addrs: []string{"203.0.113.1"}},
			query:     "api.local",
			want:      []string{"10.0.0.5"},
		},
		{
			name:      "local shadows upstream",
			discovery: staticSource{},
			local:     staticSource{"db.local": "127.0.0.1"},
			primary:   &spyUpstream{addrs: []string{"203.0.113.1"}},
			query:     "db.local",
			want:      []string{"127.0.0.1"},
		},
		{
			name:      "upstream answers when sources miss",
			discovery: staticSource{},
			local:     staticSource{},
			primary:   &spyUpstream{addrs: []string{"93.184.216.34"}},
			query:     "example.com",
			want:      []string{"93.184.216.34"},
		},
		{
			name:    "multiple upstream answers preserved",
			primary: &spyUpstream{addrs: []string{"203.0.113.1", "203.0.113.2"}},
			query:   "multi.example.com",
			want:    []string{"203.0.113.1", "203.0.113.2"},
		},
		{
			name:  "miss everywhere yields no answers",
			query: "nowhere.example.com",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{}
			if tt.discovery != nil {
				opts.Discovery = tt.discovery
			}
			if tt.local != nil {
				opts.Local = tt.local
			}
			if tt.primary != nil {
				opts.Primary = tt.primary
			}
			if tt.secondary != nil {
				opts.Secondary = tt.secondary
			}

			answers := NewEngine(opts).Resolve(context.Background(), tt.query)

			if len(answers) != len(tt.want) {
				t.Fatalf("got %d answers, want %d", len(answers), len(tt.want))
			}
			for i, want := range tt.want {
				if answers[i].Addr.String() != want {
					t.Errorf("answer[%d] = %s, want %s", i, answers[i].Addr, want)
				}
				if answers[i].TTL != TTL {
					t.Errorf("answer[%d] ttl = %d, want %d", i, answers[i].TTL, TTL)
				}
			}
		})
	}
}

func TestResolveSecondaryNotConsultedWhenPrimaryAnswers(t *testing.T) {
	primary := &spyUpstream{addrs: []string{"203.0.113.1"}}
	secondary := &spyUpstream{addrs: []string{"203.0.113.99"}}

	engine := NewEngine(Options{Primary: primary, Secondary: secondary})
	answers := engine.Resolve(context.Background(), "example.com")

	if len(answers) != 1 || answers[0].Addr.String() != "203.0.113.1" {
		t.Fatalf("unexpected answers: %v", answers)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary consulted %d times, want 0", secondary.calls)
	}
}

func TestResolveFailoverOnPrimaryError(t *testing.T) {
	primary := &spyUpstream{err: errors.New("connection refused")}
	secondary := &spyUpstream{addrs: []string{"203.0.113.99"}}

	engine := NewEngine(Options{Primary: primary, Secondary: secondary})
	answers := engine.Resolve(context.Background(), "example.com")

	if len(answers) != 1 || answers[0].Addr.String() != "203.0.113.99" {
		t.Fatalf("expected secondary answer, got %v", answers)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls primary=%d secondary=%d, want 1 and 1", primary.calls, secondary.calls)
	}
}

func TestResolveFailoverOnPrimaryEmpty(t *testing.T) {
	primary := &spyUpstream{}
	secondary := &spyUpstream{addrs: []string{"203.0.113.99"}}

	engine := NewEngine(Options{Primary: primary, Secondary: secondary})
	answers := engine.Resolve(context.Background(), "example.com")

	if len(answers) != 1 || answers[0].Addr.String() != "203.0.113.99" {
		t.Fatalf("expected secondary answer, got %v", answers)
	}
}

func TestResolveBothUpstreamsFail(t *testing.T) {
	primary := &spyUpstream{err: errors.New("timeout")}
	secondary := &spyUpstream{err: errors.New("refused")}

	engine := NewEngine(Options{Primary: primary, Secondary: secondary})
	answers := engine.Resolve(context.Background(), "example.com")

	if len(answers) != 0 {
		t.Fatalf("expected no answers, got %v", answers)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls primary=%d secondary=%d, want 1 and 1", primary.calls, secondary.calls)
	}
}

func TestResolveSourceHitSkipsUpstreams(t *testing.T) {
	primary := &spyUpstream{addrs: []string{"203.0.113.1"}}

	engine := NewEngine(Options{
		Local:   staticSource{"db.local": "127.0.0.1"},
		Primary: primary,
	})
	engine.Resolve(context.Background(), "db.local")

	if primary.calls != 0 {
		t.Errorf("primary consulted %d times, want 0", primary.calls)
	}
}

func TestResolveNormalizesQuery(t *testing.T) {
	engine := NewEngine(Options{Discovery: staticSource{"api.local": "10.0.0.5"}})

	answers := engine.Resolve(context.Background(), "API.Local.")
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
	if answers[0].Name != "api.local" {
		t.Errorf("answer name = %s, want api.local", answers[0].Name)
	}
}

func TestResolveNilEverything(t *testing.T) {
	answers := NewEngine(Options{}).Resolve(context.Background(), "example.com")
	if answers != nil {
		t.Errorf("expected nil answers, got %v", answers)
	}
}
