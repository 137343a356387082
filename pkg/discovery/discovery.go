package discovery

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	docker "github.com/fsouza/go-dockerclient"
	"github.com/rs/zerolog"

	"github.com/burrowdns/burrow/pkg/hosts"
	"github.com/burrowdns/burrow/pkg/log"
	"github.com/burrowdns/burrow/pkg/metrics"
)

// Config configures a discovery source
type Config struct {
	Endpoint string        // Docker Engine API endpoint
	Refresh  time.Duration // snapshot refresh interval
}

// Snapshot is one immutable generation of the discovered hostname table.
// Lookups read whichever generation is current; a refresh replaces the
// whole generation, never individual entries.
type Snapshot struct {
	names map[string]net.IP
	taken time.Time
}

// NewSnapshot builds a snapshot from a fixed hostname table
func NewSnapshot(names map[string]net.IP) *Snapshot {
	copied := make(map[string]net.IP, len(names))
	for name, ip := range names {
		copied[hosts.Normalize(name)] = ip
	}
	return &Snapshot{names: copied, taken: time.Now()}
}

// Len returns the number of hostnames in the snapshot
func (s *Snapshot) Len() int {
	return len(s.names)
}

// Taken returns when the snapshot was built
func (s *Snapshot) Taken() time.Time {
	return s.taken
}

// Names returns a copy of the hostname table with printable addresses
func (s *Snapshot) Names() map[string]string {
	out := make(map[string]string, len(s.names))
	for name, ip := range s.names {
		out[name] = ip.String()
	}
	return out
}

// Source resolves hostnames discovered from a container engine's
// reverse-proxy metadata. A background goroutine rebuilds the snapshot
// every Refresh interval; lookups never block on it.
type Source struct {
	client    *docker.Client
	refresh   time.Duration
	snapshot  atomic.Pointer[Snapshot]
	stopCh    chan struct{}
	runDone   chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// NewSource connects to the container engine, performs one blocking fetch
// and starts the refresh goroutine. A failed initial fetch is not an
// error; the source starts with an empty snapshot and retries on the next
// tick. Only an unusable endpoint fails construction.
func NewSource(cfg Config) (*Source, error) {
	client, err := docker.NewClient(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	// Bounds how long Close can wait on an in-flight fetch
	client.HTTPClient.Timeout = 15 * time.Second

	s := &Source{
		client:  client,
		refresh: cfg.Refresh,
		stopCh:  make(chan struct{}),
		runDone: make(chan struct{}),
		logger:  log.WithComponent("discovery"),
	}
	s.snapshot.Store(&Snapshot{names: make(map[string]net.IP), taken: time.Now()})

	if snap, err := s.fetch(); err != nil {
		metrics.DiscoveryRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("Initial discovery fetch failed, starting with empty snapshot")
	} else {
		s.store(snap)
		metrics.DiscoveryRefreshTotal.WithLabelValues("ok").Inc()
		s.logger.Info().Int("hostnames", snap.Len()).Msg("Initial discovery snapshot built")
	}

	go s.run()
	return s, nil
}

// Lookup resolves name against the current snapshot
func (s *Source) Lookup(name string) (net.IP, bool) {
	ip, ok := s.snapshot.Load().names[hosts.Normalize(name)]
	return ip, ok
}

// Snapshot returns the current snapshot generation
func (s *Source) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Close stops the refresh goroutine and waits for it to exit. An
// in-flight fetch is allowed to finish but its result is discarded.
// Safe to call more than once.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		<-s.runDone
		s.logger.Debug().Msg("Discovery source closed")
	})
	return nil
}

func (s *Source) run() {
	defer close(s.runDone)

	ticker := time.NewTicker(s.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshOnce()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Source) refreshOnce() {
	snap, err := s.fetch()
	if err != nil {
		metrics.DiscoveryRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("Discovery fetch failed, keeping previous snapshot")
		return
	}

	// Discard the result if Close happened while the fetch was in flight
	select {
	case <-s.stopCh:
		return
	default:
	}

	s.store(snap)
	metrics.DiscoveryRefreshTotal.WithLabelValues("ok").Inc()
	s.logger.Debug().Int("hostnames", snap.Len()).Msg("Discovery snapshot refreshed")
}

func (s *Source) store(snap *Snapshot) {
	s.snapshot.Store(snap)
	metrics.DiscoveryHostnames.Set(float64(snap.Len()))
}

// fetch builds a new snapshot from a single ListContainers call. The
// snapshot is complete or not built at all; partial results never replace
// the current generation.
func (s *Source) fetch() (*Snapshot, error) {
	// Zero options lists running containers only
	containers, err := s.client.ListContainers(docker.ListContainersOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	names := make(map[string]net.IP)
	for _, container := range containers {
		addr := containerAddress(container)
		if addr == nil {
			continue
		}
		for _, name := range hostnamesFromLabels(container.Labels) {
			names[name] = addr
		}
	}

	return &Snapshot{names: names, taken: time.Now()}, nil
}

// containerAddress picks the first IPv4 across the container's attached
// networks, walking network names in sorted order so repeated fetches of
// an unchanged engine state build identical snapshots.
func containerAddress(container docker.APIContainers) net.IP {
	networks := make([]string, 0, len(container.Networks.Networks))
	for name := range container.Networks.Networks {
		networks = append(networks, name)
	}
	sort.Strings(networks)

	for _, name := range networks {
		ip := net.ParseIP(container.Networks.Networks[name].IPAddress)
		if ip == nil {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			return ip4
		}
	}
	return nil
}

var (
	hostGroupPattern = regexp.MustCompile(`Host\(([^)]*)\)`)
	backtickPattern  = regexp.MustCompile("`([^`]+)`")
)

// hostnamesFromLabels extracts hostnames from reverse-proxy router rule
// labels (keys ending in ".rule", covering traefik v1 frontend and v2
// router conventions).
func hostnamesFromLabels(labels map[string]string) []string {
	var names []string
	for key, rule := range labels {
		if !strings.HasSuffix(key, ".rule") {
			continue
		}
		names = append(names, hostsFromRule(rule)...)
	}
	return names
}

// hostsFromRule parses both rule syntaxes: v2 matchers like
// Host(`a.local`) || Host(`b.local`, `c.local`) and the v1 form
// Host:a.local,b.local.
func hostsFromRule(rule string) []string {
	var names []string

	for _, group := range hostGroupPattern.FindAllStringSubmatch(rule, -1) {
		for _, host := range backtickPattern.FindAllStringSubmatch(group[1], -1) {
			names = append(names, hosts.Normalize(host[1]))
		}
	}

	if rest, ok := strings.CutPrefix(rule, "Host:"); ok {
		for _, host := range strings.Split(rest, ",") {
			if host = strings.TrimSpace(host); host != "" {
				names = append(names, hosts.Normalize(host))
			}
		}
	}

	return names
}
