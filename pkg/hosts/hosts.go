package hosts

import (
	"fmt"
	"net"
	"os"
	"strings"
)

// Table resolves hostnames from a static, locally configured mapping.
// It is built once and never refreshed; matching is a case-insensitive
// exact match with no wildcard support.
type Table struct {
	entries map[string]net.IP
}

// NewTable builds a table from inline config entries plus an optional
// hosts(5)-format file. Inline entries take precedence over file entries.
func NewTable(entries map[string]string, file string) (*Table, error) {
	t := &Table{entries: make(map[string]net.IP)}

	if file != "" {
		if err := t.loadFile(file); err != nil {
			return nil, err
		}
	}

	for name, value := range entries {
		ip := parseIPv4(value)
		if ip == nil {
			return nil, fmt.Errorf("local entry %q: %q is not an IPv4 address", name, value)
		}
		t.entries[Normalize(name)] = ip
	}

	return t, nil
}

// Lookup returns the address mapped to name, if any
func (t *Table) Lookup(name string) (net.IP, bool) {
	ip, ok := t.entries[Normalize(name)]
	return ip, ok
}

// Len returns the number of entries in the table
func (t *Table) Len() int {
	return len(t.entries)
}

// loadFile reads a hosts(5)-format file: one IPv4 address followed by one
// or more hostnames per line, # starts a comment. Non-IPv4 lines (IPv6
// entries in a system hosts file) are skipped.
func (t *Table) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read hosts file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		ip := parseIPv4(fields[0])
		if ip == nil {
			continue
		}
		for _, name := range fields[1:] {
			t.entries[Normalize(name)] = ip
		}
	}

	return nil
}

// Normalize lowercases a hostname and strips the trailing dot, the form
// used for every table key and lookup in the resolver
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

func parseIPv4(s string) net.IP {
	ip := net.ParseIP(s)
	if ip == nil {
		return nil
	}
	return ip.To4()
}
