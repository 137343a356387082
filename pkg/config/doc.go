/*
Package config loads, validates, and watches Burrow's YAML configuration.

A single file describes the listener, the resolution sources, and the
operational surfaces. Every field has a default, so the zero-effort config is
an empty file and the smallest useful one is a couple of lines.

# Configuration File

	host: 127.0.0.1
	port: 53

	dns:
	  primary: 1.1.1.1:53
	  secondary: 8.8.8.8:53
	  timeout: 5000

	docker:
	  enable: true
	  endpoint: unix:///var/run/docker.sock
	  refresh: 10000

	local:
	  entries:
	    db.local: 127.0.0.1
	  file: /etc/burrow/hosts

	watch:
	  enable: true
	  interval: 2000

	admin:
	  enable: true
	  addr: 127.0.0.1:5380

	log:
	  level: info
	  json: false

# Defaults

  - host 127.0.0.1, port 53
  - upstream timeout 5000ms
  - docker disabled; endpoint unix:///var/run/docker.sock, refresh 10000ms
  - watch enabled, settle interval 2000ms
  - admin disabled; addr 127.0.0.1:5380
  - log level info, console output

Upstream addresses without a port get :53 appended. Validation rejects
out-of-range ports, non-positive intervals, and unknown log levels; a config
that fails validation is never partially applied.

# Loading

	cfg, err := config.Load("burrow.yaml")
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr() // "127.0.0.1:53"

Load reads, parses, applies defaults, and validates in one step. Parse does
the same from bytes for callers that already hold the file contents.

# Watching

Watcher reports when the config file settles after a change:

	w, err := config.NewWatcher("burrow.yaml", cfg.Watch.Interval())
	if err != nil {
		return err
	}
	defer w.Close()

	for ev := range w.Events() {
		switch ev.Type {
		case config.Removed:
			// stop serving
		default:
			// reload from ev.Path
		}
	}

The watcher watches the file's parent directory, so editors that replace the
file (rename-over-write) and tools that delete and recreate it are all seen.
Rapid bursts of filesystem events are debounced by the settle interval and
delivered as one event, carrying the burst's final state: a file that is
deleted and recreated within one interval surfaces as a single change, not a
remove followed by a create. Events() is closed by Close, so the range loop
above terminates on shutdown.

# See Also

  - pkg/lifecycle - applies loaded configs to the running server
  - cmd/burrow - wires the watcher to reloads
*/
package config
