package config

import "time"

// Config holds runtime settings for the dectrack CLI.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - ListStaleness: how long cached list and view results stay fresh.
//   - DatabaseFile: path to the local sqlite database (session state).
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	ListStaleness       time.Duration
	DatabaseFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.ListStaleness = 2 * time.Minute
	c.DatabaseFile = "dectrack.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
