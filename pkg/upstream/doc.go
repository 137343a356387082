/*
Package upstream queries external DNS servers over TCP.

A Client wraps one upstream server. Query sends a single A question and
returns a Result that either carries addresses or an error; the caller
decides what an error means (for Burrow's resolver, it means try the next
upstream).

	client := upstream.NewClient("1.1.1.1:53", 5*time.Second)

	res := client.Query(ctx, "example.com")
	if res.Err != nil {
		// transport failure or non-NOERROR rcode
	}
	for _, addr := range res.Addrs {
		fmt.Println(addr)
	}

Addresses without a port default to :53. Exchanges run over TCP with the
configured timeout; the context can cut them shorter.

# Result Contract

  - transport errors and non-NOERROR response codes both populate Err
  - a NOERROR response with no A records is Addrs nil, Err nil
  - only A records are extracted; CNAMEs in the answer section are skipped,
    their terminal A records (when present) are kept

The empty-but-successful case is deliberate: the caller must be able to
distinguish "this server answered and knows nothing" from "this server is
broken", because only the latter counts against the server in metrics
(burrow_upstream_errors_total).

This package does not log. The resolver owns the failover decision and logs
it with the context only it has.
*/
package upstream
