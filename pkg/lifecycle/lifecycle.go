package lifecycle

import (
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/burrowdns/burrow/pkg/admin"
	"github.com/burrowdns/burrow/pkg/config"
	"github.com/burrowdns/burrow/pkg/discovery"
	"github.com/burrowdns/burrow/pkg/hosts"
	"github.com/burrowdns/burrow/pkg/log"
	"github.com/burrowdns/burrow/pkg/metrics"
	"github.com/burrowdns/burrow/pkg/resolver"
	"github.com/burrowdns/burrow/pkg/server"
	"github.com/burrowdns/burrow/pkg/upstream"
)

// Manager owns the running server generation. Every transition holds one
// mutex, so a reload fully closes the old generation before the new one
// binds and two listeners can never coexist.
type Manager struct {
	mu     sync.Mutex
	handle *server.Handle
	logger zerolog.Logger
}

// NewManager creates a stopped manager
func NewManager() *Manager {
	return &Manager{
		logger: log.WithComponent("lifecycle"),
	}
}

// Start builds a server generation from cfg and binds it. Discovery and
// admin failures degrade with a log; a DNS bind failure tears down the
// parts already started and returns the error.
func (m *Manager) Start(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle != nil {
		return fmt.Errorf("server already running")
	}
	return m.start(cfg)
}

// Reload replaces the running generation with one built from cfg. The
// old handle is fully closed before the new bind, so an unchanged
// host/port binds again without conflict. On a stopped manager this is
// simply a start.
func (m *Manager) Reload(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.stop(); err != nil {
		m.logger.Warn().Err(err).Msg("Error closing previous server during reload")
	}
	if err := m.start(cfg); err != nil {
		return err
	}

	metrics.ReloadsTotal.Inc()
	return nil
}

// Stop closes the current generation. Stopping a stopped manager is a
// no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop()
}

// Running reports whether a server generation is live
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle != nil
}

// Addr returns the bound DNS address, nil when stopped
func (m *Manager) Addr() net.Addr {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handle == nil {
		return nil
	}
	return m.handle.Addr()
}

// start and stop assume the caller holds m.mu.

func (m *Manager) start(cfg *config.Config) error {
	table, err := hosts.NewTable(cfg.Local.Entries, cfg.Local.File)
	if err != nil {
		return fmt.Errorf("failed to build local table: %w", err)
	}

	opts := resolver.Options{Local: table}
	var owned []io.Closer

	var src *discovery.Source
	if cfg.Docker.Enable {
		src, err = discovery.NewSource(discovery.Config{
			Endpoint: cfg.Docker.Endpoint,
			Refresh:  cfg.Docker.RefreshInterval(),
		})
		if err != nil {
			m.logger.Error().Err(err).Str("endpoint", cfg.Docker.Endpoint).
				Msg("Discovery unavailable, continuing without it")
			metrics.SetComponent("discovery", false, err.Error())
			src = nil
		} else {
			opts.Discovery = src
			owned = append(owned, src)
			metrics.SetComponent("discovery", true, "")
		}
	}

	if cfg.DNS.Primary != "" {
		opts.Primary = upstream.NewClient(cfg.DNS.Primary, cfg.DNS.Timeout())
	}
	if cfg.DNS.Secondary != "" {
		opts.Secondary = upstream.NewClient(cfg.DNS.Secondary, cfg.DNS.Timeout())
	}

	engine := resolver.NewEngine(opts)

	var adminSrv *admin.Server
	if cfg.Admin.Enable {
		adminCfg := admin.Config{
			Addr:    cfg.Admin.Addr,
			Sources: sourceNames(opts),
		}
		if src != nil {
			adminCfg.Discovery = src.Snapshot
		}

		adminSrv, err = admin.NewServer(adminCfg)
		if err != nil {
			m.logger.Error().Err(err).Str("addr", cfg.Admin.Addr).
				Msg("Admin server unavailable, continuing without it")
			metrics.SetComponent("admin", false, err.Error())
			adminSrv = nil
		} else {
			owned = append(owned, adminSrv)
			metrics.SetComponent("admin", true, "")
		}
	}

	handle, err := server.Listen(cfg.Host, cfg.Port, engine, owned...)
	if err != nil {
		for _, c := range owned {
			_ = c.Close()
		}
		metrics.SetComponent("dns", false, err.Error())
		return err
	}

	if adminSrv != nil {
		adminSrv.SetServerInfo(handle.ID(), handle.Addr().String())
	}

	metrics.SetComponent("dns", true, "")
	m.handle = handle
	m.logger.Info().
		Str("instance", handle.ID()).
		Str("addr", handle.Addr().String()).
		Strs("sources", sourceNames(opts)).
		Msg("Server started")
	return nil
}

func (m *Manager) stop() error {
	if m.handle == nil {
		return nil
	}

	err := m.handle.Close()
	m.handle = nil

	metrics.SetComponent("dns", false, "stopped")
	metrics.ClearComponent("discovery")
	metrics.ClearComponent("admin")

	m.logger.Info().Msg("Server stopped")
	return err
}

func sourceNames(opts resolver.Options) []string {
	var names []string
	if opts.Discovery != nil {
		names = append(names, "discovery")
	}
	if opts.Local != nil {
		names = append(names, "local")
	}
	if opts.Primary != nil {
		names = append(names, "primary")
	}
	if opts.Secondary != nil {
		names = append(names, "secondary")
	}
	return names
}
