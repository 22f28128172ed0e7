package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

// UpstreamConfig points at the SynergySphere REST backend.
type UpstreamConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit"` // outbound requests per second
	RateBurst      int     `yaml:"rate_burst"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type SessionConfig struct {
	CookieName    string `yaml:"cookie_name"`
	TTLHours      int    `yaml:"ttl_hours"`
	PurgeSchedule string `yaml:"purge_schedule"` // cron spec for expired-session cleanup
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "3000",
			Mode: "debug",
		},
		Upstream: UpstreamConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
			RateLimit:      50,
			RateBurst:      100,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "synergysphere.db",
		},
		Session: SessionConfig{
			CookieName:    "synergy_sid",
			TTLHours:      720, // 30 days
			PurgeSchedule: "17 * * * *",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = def.Upstream.BaseURL
	}
	if c.Upstream.TimeoutSeconds == 0 {
		c.Upstream.TimeoutSeconds = def.Upstream.TimeoutSeconds
	}
	if c.Upstream.RateLimit == 0 {
		c.Upstream.RateLimit = def.Upstream.RateLimit
	}
	if c.Upstream.RateBurst == 0 {
		c.Upstream.RateBurst = def.Upstream.RateBurst
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = def.Session.CookieName
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = def.Session.TTLHours
	}
	if c.Session.PurgeSchedule == "" {
		c.Session.PurgeSchedule = def.Session.PurgeSchedule
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	// Single backend override, matching the frontend convention.
	if apiURL := os.Getenv("SYNERGY_API_URL"); apiURL != "" {
		c.Upstream.BaseURL = apiURL
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if ttl := os.Getenv("SESSION_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			c.Session.TTLHours = hours
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}
