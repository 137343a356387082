/*
Package lifecycle starts, reloads, and stops the Burrow server as one unit.

The Manager assembles the resolution chain from a Config, binds the UDP
listener, and owns the teardown of everything it started. All transitions go
through one mutex, so a reload can never race a shutdown and two listeners
never coexist.

# States and Transitions

	            Start(cfg)
	  stopped ────────────────▶ running
	     ▲                        │  │
	     │        Stop()          │  │ Reload(cfg)
	     └────────────────────────┘  ▼
	                              running (new handle, same lock)

Reload is stop-then-start: the old handle is fully closed, its socket
released and its owned components shut down, before the new one binds. The
gap is the cost of guaranteeing that exactly one listener exists at any
moment. If the new config fails to bind, the manager is left stopped rather
than half-started.

# Assembly

Start builds, in order:

 1. Local table from inline entries and the optional hosts file; an invalid
    table fails the start, since it means the config itself is bad
 2. Discovery source, when docker.enable is set
 3. Upstream clients for whichever of primary and secondary are configured
 4. Resolution engine over the above
 5. Admin server, when admin.enable is set
 6. The UDP handle, which takes ownership of discovery and admin

# Degraded Starts

Only the UDP bind decides success. Discovery and admin failures log a
warning, mark their health component unhealthy, and the server starts
without them:

	{"level":"warn","component":"lifecycle","error":"...","message":"Discovery unavailable, continuing without it"}

A developer whose Docker daemon is down still gets local-table and upstream
resolution, and /health (when admin is up) shows exactly which component is
missing.

# Usage

	mgr := lifecycle.NewManager()
	if err := mgr.Start(cfg); err != nil {
		return err
	}
	defer mgr.Stop()

	// later, on a config change
	if err := mgr.Reload(newCfg); err != nil {
		log.Logger.Error().Err(err).Msg("reload failed")
	}

Stop on a stopped manager is a no-op. Reload on a stopped manager is just a
start, so callers don't need to track state themselves; Running and Addr
exist for the ones that want to.

# See Also

  - pkg/server - the Handle the manager cycles
  - cmd/burrow - drives the manager from signals and config events
*/
package lifecycle
