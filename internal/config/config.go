package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHealthListen       = ":8000"
	DefaultAvailabilityListen = ":8001"
	DefaultUTCOffset          = "+05:30"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

var (
	ErrMissingCalendarID  = errors.New("calendar_id is required")
	ErrMissingCredentials = errors.New("credentials_file is required unless api_endpoint is set")
	ErrInvalidOffset      = errors.New("utc_offset must look like +05:30")
)

// CORSConfig controls the cross-origin policy applied to both HTTP services.
type CORSConfig struct {
	// AllowedOrigins lists permitted origins. "*" permits every origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
	// AllowCredentials makes browsers expose responses to credentialed requests.
	AllowCredentials *bool `yaml:"allow_credentials"`
}

// Config is the typed configuration shared by every calavail subcommand.
type Config struct {
	HealthListen       string `yaml:"health_listen"`
	AvailabilityListen string `yaml:"availability_listen"`

	// GRPCListen enables the gRPC health endpoint when non-empty.
	GRPCListen string `yaml:"grpc_listen"`

	// CalendarID is the Google calendar queried by /check.
	CalendarID string `yaml:"calendar_id"`

	// UTCOffset is appended to the start/end-of-day timestamps of the query window.
	UTCOffset string `yaml:"utc_offset"`

	// CredentialsFile is a service account key (or OAuth client file paired with TokenFile).
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`

	// APIEndpoint overrides the Calendar API base URL.
	APIEndpoint string `yaml:"api_endpoint"`

	// UpstreamRateLimit is requests per second to the Calendar API; 0 disables limiting.
	UpstreamRateLimit float64 `yaml:"upstream_rate_limit"`
	UpstreamBurst     int     `yaml:"upstream_burst"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	CORS CORSConfig `yaml:"cors"`
}

// DefaultConfig returns the configuration used when no file or flags are present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.HealthListen == "" {
		c.HealthListen = DefaultHealthListen
	}
	if c.AvailabilityListen == "" {
		c.AvailabilityListen = DefaultAvailabilityListen
	}
	if c.UTCOffset == "" {
		c.UTCOffset = DefaultUTCOffset
	}
	if c.UpstreamBurst <= 0 {
		c.UpstreamBurst = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.CORS.AllowCredentials == nil {
		allow := true
		c.CORS.AllowCredentials = &allow
	}
}

// Validate checks the fields every subcommand depends on.
func (c *Config) Validate() error {
	if _, err := ParseOffset(c.UTCOffset); err != nil {
		return err
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	if c.UpstreamRateLimit < 0 {
		return fmt.Errorf("upstream_rate_limit must not be negative, got %v", c.UpstreamRateLimit)
	}
	return nil
}

// ValidateAvailability checks the fields needed to query the Calendar API.
func (c *Config) ValidateAvailability() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CalendarID == "" {
		return ErrMissingCalendarID
	}
	if c.CredentialsPath() == "" && c.APIEndpoint == "" {
		return ErrMissingCredentials
	}
	return nil
}

// CredentialsPath returns the credential file to authenticate with. Without an explicit
// file it falls back to the default service account path, unless a custom API endpoint
// is configured, in which case "" means an unauthenticated client.
func (c *Config) CredentialsPath() string {
	if c.CredentialsFile != "" || c.APIEndpoint != "" {
		return c.CredentialsFile
	}
	p, err := GetServiceAccountPath()
	if err != nil {
		return ""
	}
	return p
}

// AllowCredentials reports the effective CORS credentials setting.
func (c *Config) AllowCredentials() bool {
	return c.CORS.AllowCredentials == nil || *c.CORS.AllowCredentials
}

// ParseOffset parses a fixed UTC offset of the form ±hh:mm.
func ParseOffset(offset string) (*time.Location, error) {
	t, err := time.Parse("-07:00", offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}
	_, secs := t.Zone()
	return time.FixedZone(offset, secs), nil
}

// Load reads a YAML config file and normalizes it. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}
