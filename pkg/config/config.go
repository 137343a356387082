package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHost is the address the resolver binds when none is configured
	DefaultHost = "127.0.0.1"

	// DefaultPort is the standard DNS port
	DefaultPort = 53

	// DefaultDockerEndpoint is the local Docker Engine API socket
	DefaultDockerEndpoint = "unix:///var/run/docker.sock"

	// DefaultRefreshMs is how often the discovery snapshot is rebuilt
	DefaultRefreshMs = 10000

	// DefaultWatchIntervalMs is the debounce window for config file events
	DefaultWatchIntervalMs = 2000

	// DefaultUpstreamTimeoutMs bounds one upstream DNS round trip
	DefaultUpstreamTimeoutMs = 5000

	// DefaultAdminAddr is where the status endpoint listens when enabled
	DefaultAdminAddr = "127.0.0.1:5380"
)

// Config is the full burrow configuration, decoded from one YAML file.
// A loaded Config is immutable: every change to the file produces a new
// Config and a new server instance.
type Config struct {
	Host   string       `yaml:"host"`
	Port   int          `yaml:"port"`
	DNS    DNSConfig    `yaml:"dns"`
	Docker DockerConfig `yaml:"docker"`
	Local  LocalConfig  `yaml:"local"`
	Watch  WatchConfig  `yaml:"watch"`
	Admin  AdminConfig  `yaml:"admin"`
	Log    LogConfig    `yaml:"log"`
}

// DNSConfig names the upstream recursive servers. Secondary is consulted
// only when the primary produced no answers.
type DNSConfig struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	TimeoutMs int    `yaml:"timeout"`
}

// Timeout returns the upstream round-trip budget
func (d DNSConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// DockerConfig controls container hostname discovery
type DockerConfig struct {
	Enable    bool   `yaml:"enable"`
	Endpoint  string `yaml:"endpoint"`
	RefreshMs int    `yaml:"refresh"`
}

// RefreshInterval returns how often the snapshot is rebuilt
func (d DockerConfig) RefreshInterval() time.Duration {
	return time.Duration(d.RefreshMs) * time.Millisecond
}

// LocalConfig is the static hostname table: inline entries plus an
// optional hosts(5)-format file. Inline entries win over file entries.
type LocalConfig struct {
	Entries map[string]string `yaml:"entries"`
	File    string            `yaml:"file"`
}

// WatchConfig controls config file watching. Enable defaults to true;
// a nil pointer means "not set in the file".
type WatchConfig struct {
	Enable     *bool `yaml:"enable"`
	IntervalMs int   `yaml:"interval"`
}

// Enabled reports whether file watching is on (the default)
func (w WatchConfig) Enabled() bool {
	return w.Enable == nil || *w.Enable
}

// Interval returns the debounce window for file events
func (w WatchConfig) Interval() time.Duration {
	return time.Duration(w.IntervalMs) * time.Millisecond
}

// AdminConfig controls the optional HTTP status endpoint
type AdminConfig struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
}

// LogConfig selects log level and format
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns a Config with every field at its default value
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw YAML, applies defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DNS.TimeoutMs == 0 {
		c.DNS.TimeoutMs = DefaultUpstreamTimeoutMs
	}
	if c.DNS.Primary != "" {
		c.DNS.Primary = withDefaultPort(c.DNS.Primary)
	}
	if c.DNS.Secondary != "" {
		c.DNS.Secondary = withDefaultPort(c.DNS.Secondary)
	}
	if c.Docker.Endpoint == "" {
		c.Docker.Endpoint = DefaultDockerEndpoint
	}
	if c.Docker.RefreshMs == 0 {
		c.Docker.RefreshMs = DefaultRefreshMs
	}
	if c.Watch.IntervalMs == 0 {
		c.Watch.IntervalMs = DefaultWatchIntervalMs
	}
	if c.Admin.Enable && c.Admin.Addr == "" {
		c.Admin.Addr = DefaultAdminAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.DNS.TimeoutMs < 0 {
		return fmt.Errorf("invalid dns.timeout %d: must be positive", c.DNS.TimeoutMs)
	}
	if c.Docker.RefreshMs < 1 {
		return fmt.Errorf("invalid docker.refresh %d: must be positive", c.Docker.RefreshMs)
	}
	if c.Watch.IntervalMs < 1 {
		return fmt.Errorf("invalid watch.interval %d: must be positive", c.Watch.IntervalMs)
	}
	for _, addr := range []string{c.DNS.Primary, c.DNS.Secondary} {
		if addr == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid upstream server %q: %w", addr, err)
		}
	}
	for name, value := range c.Local.Entries {
		if name == "" {
			return fmt.Errorf("local entry with empty hostname")
		}
		ip := net.ParseIP(value)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("local entry %q: %q is not an IPv4 address", name, value)
		}
	}
	return nil
}

// ListenAddr returns the host:port the query server binds
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// withDefaultPort appends :53 to an upstream address that has no port
func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, "53")
}
