package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultUpstreamTimeoutMs, cfg.DNS.TimeoutMs)
	assert.Equal(t, DefaultDockerEndpoint, cfg.Docker.Endpoint)
	assert.Equal(t, DefaultRefreshMs, cfg.Docker.RefreshMs)
	assert.True(t, cfg.Watch.Enabled())
	assert.Equal(t, DefaultWatchIntervalMs, cfg.Watch.IntervalMs)
	assert.False(t, cfg.Docker.Enable)
	assert.False(t, cfg.Admin.Enable)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseFull(t *testing.T) {
	data := []byte(`
host: 0.0.0.0
port: 5300
dns:
  primary: 8.8.8.8
  secondary: 1.1.1.1:5353
  timeout: 1500
docker:
  enable: true
  endpoint: tcp://127.0.0.1:2375
  refresh: 3000
local:
  entries:
    db.local: 127.0.0.1
    Api.Local: 10.0.0.9
  file: /tmp/extra-hosts
watch:
  enable: false
  interval: 500
admin:
  enable: true
log:
  level: debug
  json: true
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 5300, cfg.Port)
	assert.Equal(t, "8.8.8.8:53", cfg.DNS.Primary, "bare IP gets the default DNS port")
	assert.Equal(t, "1.1.1.1:5353", cfg.DNS.Secondary, "explicit port is kept")
	assert.Equal(t, 1500, cfg.DNS.TimeoutMs)
	assert.True(t, cfg.Docker.Enable)
	assert.Equal(t, "tcp://127.0.0.1:2375", cfg.Docker.Endpoint)
	assert.Equal(t, 3000, cfg.Docker.RefreshMs)
	assert.Len(t, cfg.Local.Entries, 2)
	assert.Equal(t, "/tmp/extra-hosts", cfg.Local.File)
	assert.False(t, cfg.Watch.Enabled())
	assert.Equal(t, 500, cfg.Watch.IntervalMs)
	assert.True(t, cfg.Admin.Enable)
	assert.Equal(t, DefaultAdminAddr, cfg.Admin.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed yaml",
			data: "host: [unterminated",
		},
		{
			name: "port too large",
			data: "port: 70000",
		},
		{
			name: "negative port",
			data: "port: -1",
		},
		{
			name: "local entry not ipv4",
			data: "local:\n  entries:\n    db.local: not-an-ip",
		},
		{
			name: "local entry ipv6",
			data: "local:\n  entries:\n    db.local: '::1'",
		},
		{
			name: "negative refresh",
			data: "docker:\n  refresh: -5",
		},
		{
			name: "negative watch interval",
			data: "watch:\n  interval: -100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestWatchEnabled(t *testing.T) {
	cfg, err := Parse([]byte("watch:\n  enable: true"))
	require.NoError(t, err)
	assert.True(t, cfg.Watch.Enabled())

	cfg, err = Parse([]byte("watch:\n  enable: false"))
	require.NoError(t, err)
	assert.False(t, cfg.Watch.Enabled())

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Watch.Enabled(), "watching defaults to enabled")
}

func TestListenAddr(t *testing.T) {
	cfg, err := Parse([]byte("host: 127.0.0.1\nport: 5300"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5300", cfg.ListenAddr())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "burrow.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 5301"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5301, cfg.Port)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultRefreshMs, int(cfg.Docker.RefreshInterval().Milliseconds()))
	assert.Equal(t, DefaultWatchIntervalMs, int(cfg.Watch.Interval().Milliseconds()))
	assert.Equal(t, DefaultUpstreamTimeoutMs, int(cfg.DNS.Timeout().Milliseconds()))
}
