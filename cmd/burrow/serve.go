package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/burrowdns/burrow/pkg/config"
	"github.com/burrowdns/burrow/pkg/lifecycle"
	"github.com/burrowdns/burrow/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resolver",
	Long: `Start the DNS server from the configuration file and keep it in sync
with the file: creating the file starts a server, changing it swaps the
running server for one built from the new content, removing it stops
resolution until the file reappears.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return runServe(configPath)
	},
}

func init() {
	serveCmd.Flags().String("config", "burrow.yaml", "Path to the configuration file")
}

func runServe(configPath string) error {
	logger := log.WithComponent("serve")

	// Watch settings fall back to defaults when the file is unreadable;
	// with the default (watching on) the loop below waits for the file.
	watchEnabled := true
	watchInterval := config.Default().Watch.Interval()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Cannot load configuration")
	} else {
		initLogging(cfg)
		watchEnabled = cfg.Watch.Enabled()
		watchInterval = cfg.Watch.Interval()
	}

	mgr := lifecycle.NewManager()

	if cfg != nil {
		if err := mgr.Start(cfg); err != nil {
			if isBindConflict(err) {
				logger.Error().Err(err).Str("addr", cfg.ListenAddr()).Msg("Address already in use")
				return err
			}
			if !watchEnabled {
				return err
			}
			logger.Error().Err(err).Msg("Startup failed, waiting for a config change")
		}
	}

	var watcher *config.Watcher
	var events <-chan config.Event
	if watchEnabled {
		watcher, err = config.NewWatcher(configPath, watchInterval)
		if err != nil {
			if !mgr.Running() {
				return fmt.Errorf("failed to watch %s: %w", configPath, err)
			}
			logger.Warn().Err(err).Msg("Config watching unavailable, running with the current config")
		} else {
			events = watcher.Events()
			defer watcher.Close()
		}
	}

	if mgr.Running() {
		fmt.Printf("Burrow is resolving on %s. Press Ctrl+C to stop.\n", mgr.Addr())
	} else {
		fmt.Printf("Waiting for a valid configuration at %s. Press Ctrl+C to stop.\n", configPath)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := handleEvent(mgr, configPath, ev); err != nil {
				// Teardown order still holds: watcher first, then server
				if watcher != nil {
					_ = watcher.Close()
				}
				_ = mgr.Stop()
				return err
			}

		case <-sigCh:
			fmt.Println("\nShutting down...")

			// The watcher closes before the server handle
			if watcher != nil {
				_ = watcher.Close()
			}
			if err := mgr.Stop(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}

			fmt.Println("✓ Shutdown complete")
			return nil
		}
	}
}

// handleEvent maps one settled file event onto the manager. The returned
// error is fatal to the process; anything recoverable is logged and
// leaves the manager in its current state.
func handleEvent(mgr *lifecycle.Manager, configPath string, ev config.Event) error {
	logger := log.WithComponent("serve")

	switch ev.Type {
	case config.Removed:
		logger.Info().Str("path", ev.Path).Msg("Config removed, stopping server")
		if err := mgr.Stop(); err != nil {
			logger.Error().Err(err).Msg("Error stopping server")
		}
		return nil

	case config.Created, config.Changed:
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error().Err(err).Str("path", ev.Path).
				Msg("New configuration unusable, keeping current state")
			return nil
		}
		initLogging(cfg)

		logger.Info().Str("path", ev.Path).Str("event", ev.Type.String()).
			Msg("Applying configuration")

		if mgr.Running() {
			err = mgr.Reload(cfg)
		} else {
			err = mgr.Start(cfg)
		}
		if err != nil {
			if isBindConflict(err) {
				logger.Error().Err(err).Str("addr", cfg.ListenAddr()).Msg("Address already in use")
				return err
			}
			logger.Error().Err(err).Msg("Failed to apply configuration")
		}
		return nil
	}

	return nil
}

func initLogging(cfg *config.Config) {
	log.Init(log.Config{
		Level:      cfg.Log.Level,
		JSONOutput: cfg.Log.JSON,
	})
}

// isBindConflict reports whether err is an in-use listen address, the
// one startup condition that never resolves on its own.
func isBindConflict(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
