package hosts

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestTableLookup(t *testing.T) {
	table, err := NewTable(map[string]string{
		"api.local": "192.168.1.10",
		"Web.Local": "192.168.1.11",
		"db.local.": "10.0.0.5",
	}, "")
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  string
		found bool
	}{
		{"exact match", "api.local", "192.168.1.10", true},
		{"uppercase query", "API.LOCAL", "192.168.1.10", true},
		{"trailing dot query", "api.local.", "192.168.1.10", true},
		{"mixed-case entry", "web.local", "192.168.1.11", true},
		{"entry stored with trailing dot", "db.local", "10.0.0.5", true},
		{"miss", "other.local", "", false},
		{"no wildcard matching", "sub.api.local", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, ok := table.Lookup(tt.query)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.query, ok, tt.found)
			}
			if ok && ip.String() != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.query, ip, tt.want)
			}
		})
	}
}

func TestTableFromFile(t *testing.T) {
	content := `# development hosts
192.168.1.20  cache.local
192.168.1.21  queue.local queue-admin.local # trailing comment

::1           ipv6.local
not-an-ip     broken.local
192.168.1.22
`
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing hosts file: %v", err)
	}

	table, err := NewTable(nil, path)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	if table.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", table.Len())
	}

	if ip, ok := table.Lookup("cache.local"); !ok || ip.String() != "192.168.1.20" {
		t.Errorf("cache.local = %v, %v", ip, ok)
	}
	if ip, ok := table.Lookup("queue-admin.local"); !ok || ip.String() != "192.168.1.21" {
		t.Errorf("queue-admin.local = %v, %v", ip, ok)
	}
	if _, ok := table.Lookup("ipv6.local"); ok {
		t.Error("IPv6 entry should be skipped")
	}
	if _, ok := table.Lookup("broken.local"); ok {
		t.Error("unparseable address should be skipped")
	}
}

func TestInlineOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte("192.168.1.30 api.local\n192.168.1.31 only-file.local\n"), 0o644); err != nil {
		t.Fatalf("writing hosts file: %v", err)
	}

	table, err := NewTable(map[string]string{"api.local": "10.0.0.1"}, path)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	if ip, _ := table.Lookup("api.local"); ip.String() != "10.0.0.1" {
		t.Errorf("inline entry should win, got %s", ip)
	}
	if ip, ok := table.Lookup("only-file.local"); !ok || ip.String() != "192.168.1.31" {
		t.Errorf("file-only entry lost: %v, %v", ip, ok)
	}
}

func TestFileLaterDuplicateWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	if err := os.WriteFile(path, []byte("192.168.1.40 dup.local\n192.168.1.41 dup.local\n"), 0o644); err != nil {
		t.Fatalf("writing hosts file: %v", err)
	}

	table, err := NewTable(nil, path)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}

	if ip, _ := table.Lookup("dup.local"); ip.String() != "192.168.1.41" {
		t.Errorf("later duplicate should win, got %s", ip)
	}
}

func TestNewTableRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
	}{
		{"not an address", map[string]string{"api.local": "nope"}},
		{"ipv6 address", map[string]string{"api.local": "::1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.entries, ""); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewTableMissingFile(t *testing.T) {
	if _, err := NewTable(nil, filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing hosts file")
	}
}

func TestEmptyTable(t *testing.T) {
	table, err := NewTable(nil, "")
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d entries", table.Len())
	}
	if _, ok := table.Lookup("anything.local"); ok {
		t.Error("empty table should never match")
	}
}
