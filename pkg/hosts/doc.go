/*
Package hosts provides the static local hostname table.

A Table maps exact hostnames to IPv4 addresses. Entries come from the config
file's inline map, from an optional hosts(5)-format file, or both; inline
entries win on collision so a one-line config override beats a shared file.

	table, err := hosts.NewTable(map[string]string{
		"db.local": "127.0.0.1",
	}, "/etc/burrow/hosts")
	if err != nil {
		return err
	}

	ip, ok := table.Lookup("DB.local.") // ok, name is normalized

The file format is the familiar one:

	# comment
	192.168.1.10   api.local api-admin.local
	192.168.1.11   web.local

Non-IPv4 file lines are skipped silently (a shared hosts file may carry IPv6
entries for other consumers). Inline entries are stricter: a value that does
not parse as IPv4 is a configuration error and fails table construction.

Lookups are exact match only, no wildcard or suffix logic. Names are
normalized with Normalize (lowercase, trailing dot stripped) on both insert
and lookup, the same normalization the rest of Burrow applies.
*/
package hosts
