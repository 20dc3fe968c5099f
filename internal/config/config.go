// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/wowecon/ahtracker/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Blizzard      BlizzardConfig      `yaml:"blizzard"`
	Discovery     DiscoveryConfig     `yaml:"discovery"`
	Cache         CacheConfig         `yaml:"cache"`
	Realms        []RealmConfig       `yaml:"realms"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings for the
// realm-mapping store. When Enabled is false the in-memory store is
// used and discovered mappings do not survive restarts.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// BlizzardConfig defines Battle.net API settings. ClientID and
// ClientSecret default to the BLIZZARD_CLIENT_ID / BLIZZARD_CLIENT_SECRET
// environment variables and are never written to config files.
type BlizzardConfig struct {
	ClientID     string          `yaml:"client_id"`
	ClientSecret string          `yaml:"client_secret"`
	TokenURL     string          `yaml:"token_url"`
	Locale       string          `yaml:"locale"`
	Timeout      time.Duration   `yaml:"timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines Battle.net API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// DiscoveryConfig defines the realm discovery sweep settings.
type DiscoveryConfig struct {
	Regions         []string      `yaml:"regions"`
	Namespaces      []string      `yaml:"namespaces"`
	RealmsPerProbe  int           `yaml:"realms_per_probe"`
	ProbeDelay      time.Duration `yaml:"probe_delay"`
	ProbeAuctions   bool          `yaml:"probe_auctions"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// CacheConfig defines the in-process auction snapshot cache.
type CacheConfig struct {
	AuctionTTL time.Duration `yaml:"auction_ttl"`
}

// RealmConfig is one entry of the static realm mapping artifact.
// ConnectedRealmID zero marks the realm as unresolved: the discovery
// sweep fills it in at runtime.
type RealmConfig struct {
	Key              string `yaml:"key"`
	DisplayName      string `yaml:"display_name"`
	Region           string `yaml:"region"`
	ConnectedRealmID int    `yaml:"connected_realm_id"`
	Namespace        string `yaml:"namespace"`
}

// Descriptor converts the config entry into a domain descriptor.
func (r *RealmConfig) Descriptor() domain.RealmDescriptor {
	return domain.RealmDescriptor{
		RealmKey:         r.Key,
		DisplayName:      r.DisplayName,
		Region:           domain.Region(r.Region),
		ConnectedRealmID: r.ConnectedRealmID,
		Namespace:        r.Namespace,
	}
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// CredentialsConfigured reports whether both Battle.net secrets are set.
func (b *BlizzardConfig) CredentialsConfigured() bool {
	return b.ClientID != "" && b.ClientSecret != ""
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A missing file is not an error: defaults plus
// environment credentials make a runnable configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	switch {
	case err == nil:
		// Expand environment variables in the YAML content.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Run on defaults.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyBlizzardDefaults(&cfg.Blizzard)
	applyDiscoveryDefaults(&cfg.Discovery)
	applyCacheDefaults(&cfg.Cache)
	applyRealmDefaults(cfg)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyBlizzardDefaults(b *BlizzardConfig) {
	if b.ClientID == "" {
		b.ClientID = os.Getenv("BLIZZARD_CLIENT_ID")
	}
	if b.ClientSecret == "" {
		b.ClientSecret = os.Getenv("BLIZZARD_CLIENT_SECRET")
	}
	if b.TokenURL == "" {
		b.TokenURL = "https://oauth.battle.net/token"
	}
	if b.Locale == "" {
		b.Locale = "en_US"
	}
	if b.Timeout == 0 {
		b.Timeout = 10 * time.Second
	}
	applyRateLimitDefaults(&b.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 36000
	}
}

func applyDiscoveryDefaults(d *DiscoveryConfig) {
	if len(d.Regions) == 0 {
		d.Regions = []string{"us", "eu", "kr", "tw"}
	}
	if len(d.Namespaces) == 0 {
		d.Namespaces = defaultNamespaces()
	}
	if d.RealmsPerProbe == 0 {
		d.RealmsPerProbe = 5
	}
	if d.ProbeDelay == 0 {
		d.ProbeDelay = 100 * time.Millisecond
	}
	if d.RefreshInterval == 0 {
		d.RefreshInterval = 6 * time.Hour
	}
}

// defaultNamespaces is the candidate namespace list for the discovery
// sweep, ordered most-likely first. The classic1x tags are the ones
// the Anniversary realms actually live under; the rest cover plausible
// variants so a dataset rename does not silently break discovery.
func defaultNamespaces() []string {
	return []string{
		"dynamic-classic1x",
		"dynamic-classic",
		"dynamic-classic-fresh",
		"dynamic-anniversary",
		"dynamic-fresh",
		"dynamic-vanilla",
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.AuctionTTL == 0 {
		c.AuctionTTL = time.Minute
	}
}

// applyRealmDefaults seeds the Anniversary realm roster when the config
// file does not define one. IDs for the US/Oceanic realms are the known
// working connected realm IDs; the EU realms ship unresolved and rely
// on the discovery sweep.
func applyRealmDefaults(cfg *Config) {
	if len(cfg.Realms) > 0 {
		return
	}
	cfg.Realms = []RealmConfig{
		{Key: "dreamscythe", DisplayName: "Dreamscythe (Normal)", Region: "us", ConnectedRealmID: 6103, Namespace: "dynamic-classic1x-us"},
		{Key: "nightslayer", DisplayName: "Nightslayer (PvP)", Region: "us", ConnectedRealmID: 6104, Namespace: "dynamic-classic1x-us"},
		{Key: "doomhowl", DisplayName: "Doomhowl (Hardcore)", Region: "us", ConnectedRealmID: 6105, Namespace: "dynamic-classic1x-us"},
		{Key: "thunderstrike", DisplayName: "Thunderstrike (EU Normal)", Region: "eu"},
		{Key: "spineshatter", DisplayName: "Spineshatter (EU PvP)", Region: "eu"},
		{Key: "soulseeker", DisplayName: "Soulseeker (EU Hardcore)", Region: "eu"},
		{Key: "maladath", DisplayName: "Maladath (Oceanic)", Region: "us", ConnectedRealmID: 6131, Namespace: "dynamic-classic1x-us"},
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// CredentialCheck reports missing Battle.net secrets as ConfigErrors,
// deliberately distinct from the AuthError a rejected credential
// produces at runtime. Missing secrets do not fail Load: the service
// still runs and serves sample data, it just cannot reach the live API.
func (cfg *Config) CredentialCheck() error {
	var errs []error
	if cfg.Blizzard.ClientID == "" {
		errs = append(errs, &domain.ConfigError{Field: "BLIZZARD_CLIENT_ID"})
	}
	if cfg.Blizzard.ClientSecret == "" {
		errs = append(errs, &domain.ConfigError{Field: "BLIZZARD_CLIENT_SECRET"})
	}
	return errors.Join(errs...)
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Enabled {
		if cfg.Database.Host == "" {
			errs = append(errs, fmt.Errorf("database.host is required when database.enabled"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, fmt.Errorf("database.name is required when database.enabled"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, fmt.Errorf("database.user is required when database.enabled"))
		}
	}

	seen := make(map[string]bool, len(cfg.Realms))
	for i := range cfg.Realms {
		r := &cfg.Realms[i]
		if r.Key == "" {
			errs = append(errs, fmt.Errorf("realms[%d].key is required", i))
			continue
		}
		if seen[r.Key] {
			errs = append(errs, fmt.Errorf("duplicate realm key %q", r.Key))
		}
		seen[r.Key] = true
	}

	return errors.Join(errs...)
}
