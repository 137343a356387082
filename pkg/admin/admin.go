package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/burrowdns/burrow/pkg/discovery"
	"github.com/burrowdns/burrow/pkg/log"
	"github.com/burrowdns/burrow/pkg/metrics"
)

// SnapshotFunc returns the current discovery snapshot. Nil when discovery
// is disabled.
type SnapshotFunc func() *discovery.Snapshot

// Config configures the admin server
type Config struct {
	Addr      string
	Sources   []string // resolution sources in precedence order
	Discovery SnapshotFunc
}

// Status is the payload served at /status
type Status struct {
	Instance   string           `json:"instance,omitempty"`
	ListenAddr string           `json:"listen_addr,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	Uptime     string           `json:"uptime"`
	Sources    []string         `json:"sources"`
	Discovery  *DiscoveryStatus `json:"discovery,omitempty"`
}

// DiscoveryStatus describes the current discovery snapshot
type DiscoveryStatus struct {
	Hostnames   int    `json:"hostnames"`
	SnapshotAge string `json:"snapshot_age"`
}

// Server exposes resolver introspection over a private HTTP listener.
// It is owned by the DNS handle and closed together with it.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	started    time.Time
	cfg        Config
	logger     zerolog.Logger

	mu       sync.RWMutex
	instance string
	dnsAddr  string

	closeOnce sync.Once
	closeErr  error
}

// NewServer binds cfg.Addr and starts serving immediately; a bind
// conflict surfaces here as an error.
func NewServer(cfg Config) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind admin %s: %w", cfg.Addr, err)
	}

	s := &Server{
		listener: listener,
		started:  time.Now(),
		cfg:      cfg,
		logger:   log.WithComponent("admin"),
	}

	router := mux.NewRouter()
	s.routes(router)

	s.httpServer = &http.Server{Handler: router}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Admin server error")
		}
	}()

	s.logger.Info().Str("addr", listener.Addr().String()).Msg("Admin server listening")
	return s, nil
}

func (s *Server) routes(router *mux.Router) {
	router.Methods("GET").Path("/status").HandlerFunc(s.handleStatus)
	router.Methods("GET").Path("/names").HandlerFunc(s.handleNames)
	router.Methods("GET").Path("/health").HandlerFunc(metrics.HealthHandler())
	router.Methods("GET").Path("/ready").HandlerFunc(metrics.ReadyHandler())
	router.Methods("GET").Path("/metrics").Handler(metrics.Handler())
}

// SetServerInfo records the DNS handle's instance id and bound address.
// They exist only after the UDP bind, which happens after the admin
// server starts.
func (s *Server) SetServerInfo(instance, dnsAddr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instance = instance
	s.dnsAddr = dnsAddr
}

// Addr returns the bound admin address
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close shuts the admin server down. Idempotent.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		if err := s.httpServer.Close(); err != nil {
			s.closeErr = fmt.Errorf("failed to close admin server: %w", err)
		}
		s.logger.Debug().Msg("Admin server closed")
	})
	return s.closeErr
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := Status{
		Instance:   s.instance,
		ListenAddr: s.dnsAddr,
		StartedAt:  s.started,
		Uptime:     time.Since(s.started).String(),
		Sources:    s.cfg.Sources,
	}
	s.mu.RUnlock()

	if s.cfg.Discovery != nil {
		snap := s.cfg.Discovery()
		status.Discovery = &DiscoveryStatus{
			Hostnames:   snap.Len(),
			SnapshotAge: time.Since(snap.Taken()).String(),
		}
	}

	s.writeJSON(w, status)
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	names := map[string]string{}
	if s.cfg.Discovery != nil {
		names = s.cfg.Discovery().Names()
	}
	s.writeJSON(w, names)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
