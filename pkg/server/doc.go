/*
Package server provides Burrow's UDP DNS listener.

A Handle owns one UDP socket, answers A-record questions through a Resolver,
and tears down cleanly. Handles are single-use: a configuration change is a
new Handle, never a mutation of a running one.

# Query Handling

	Client query (UDP)
	  ↓
	1. Reply skeleton mirrors the request ID and question
	  ↓
	2. First question only; A questions go to the Resolver
	  ↓
	3. Each resolved address becomes an A record
	  ↓
	4. Response written (empty answer section on a miss, rcode NOERROR)

Unknown names are NOERROR with zero answers rather than NXDOMAIN, so stub
resolvers that treat NXDOMAIN as authoritative don't cache the miss while a
container is still starting. Non-A questions get the same empty NOERROR.

# Usage

	handle, err := server.Listen("127.0.0.1", 53, engine, discoverySrc, adminSrv)
	if err != nil {
		return fmt.Errorf("failed to bind udp: %w", err)
	}
	defer handle.Close()

	fmt.Printf("instance %s on %s\n", handle.ID(), handle.Addr())

Listen binds synchronously: a port conflict surfaces as the returned error,
not as a late failure from the serving goroutine. The trailing closers are
owned by the handle and closed exactly once when the handle closes, after
the socket itself. Close is idempotent.

Each handle carries a short random instance ID that appears in its log lines,
which keeps interleaved logs readable across reloads.

# See Also

  - pkg/resolver - the Resolver implementation behind the listener
  - pkg/lifecycle - starts, reloads, and stops handles
*/
package server
