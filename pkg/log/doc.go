/*
Package log provides structured logging for Burrow using zerolog.

The package wraps zerolog behind a small surface: one global logger,
initialized from config, plus helpers that derive child loggers carrying
component context. Output is JSON for machines or console format for humans.

# Usage

Initializing:

	log.Init(log.Config{
		Level:      "info",
		JSONOutput: false,
		Output:     os.Stdout,
	})

Logging through the global logger:

	log.Logger.Info().Str("path", path).Msg("Configuration loaded")
	log.Logger.Warn().Err(err).Msg("Config watching unavailable")

Component loggers:

	logger := log.WithComponent("discovery")
	logger.Debug().Int("hostnames", n).Msg("Snapshot refreshed")

	// {"level":"debug","component":"discovery","hostnames":3,"time":"...","message":"Snapshot refreshed"}

Instance loggers add the short server instance ID, which distinguishes log
lines across reloads when two handles briefly overlap in the log stream:

	logger := log.WithInstance("dns", handle.ID())
	logger.Info().Str("addr", addr).Msg("Listening")

	// {"level":"info","component":"dns","instance":"a3f8c21b","addr":"127.0.0.1:53","message":"Listening"}

# Levels

Accepted levels are debug, info, warn, and error. An unknown level falls back
to info rather than failing startup; config validation catches typos before
they get here. The package initializes itself at info/console so code that
logs before Init still produces output.

Init may be called again with new settings. Reloads do exactly that when the
log section of the config changes, and child loggers created afterwards pick
up the new level and format.
*/
package log
