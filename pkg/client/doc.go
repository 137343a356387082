/*
Package client is a small HTTP client for Burrow's admin API.

It backs the CLI's status and names commands and is usable from tests or
tooling that wants typed access to a running resolver:

	c := client.NewClient("127.0.0.1:5380")

	status, err := c.Status(ctx)
	names, err := c.Names(ctx)
	health, err := c.Health(ctx)

Status and Names error on any non-200 response. Health decodes the payload
for 200 and 503 alike, since an unhealthy resolver is an answer, not a
transport failure. Requests carry a 10 second timeout on top of whatever
deadline the context brings.
*/
package client
