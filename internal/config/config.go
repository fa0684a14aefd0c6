package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultWebScheme    = "http"
	DefaultSWISPort     = 17778
	DefaultPageSize     = 10
	DefaultSampleMode   = "sorted"
	DefaultSampleSize   = 25
	DefaultOutputFormat = "csv"
)

// Config is the top-level configuration for alertscope.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Report ReportConfig `yaml:"report"`
	Output OutputConfig `yaml:"output"`
}

// ServerConfig identifies the monitoring server and how to authenticate to it.
// The same host serves both the SWIS query API (dedicated port, basic auth)
// and the web API used for alert lookups (session cookie).
type ServerConfig struct {
	// Host is the monitoring server hostname or IP, without scheme or port.
	Host string `yaml:"host"`

	// WebScheme is the scheme of the web console and alert API: http | https.
	WebScheme string `yaml:"web_scheme"`

	// SWISPort is the port of the SWIS JSON query endpoint.
	SWISPort int `yaml:"swis_port"`

	// Username is the account used for both SWIS queries and the web login.
	Username string `yaml:"username"`

	// PasswordEnv is the name of the environment variable that holds the
	// password. The password itself never appears in the config file.
	PasswordEnv string `yaml:"password_env"`

	// TLS holds dial options shared by both endpoints.
	TLS TLSConfig `yaml:"tls"`
}

// Password returns the password resolved from the environment.
// Returns empty string if PasswordEnv is unset or the variable is not found.
func (s ServerConfig) Password() string {
	if s.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(s.PasswordEnv)
}

// TLSConfig holds TLS dial options.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification. Monitoring
	// servers commonly run with self-signed certificates.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// ReportConfig controls element selection and the per-element alert lookup.
type ReportConfig struct {
	// PageSize is the page size sent on every alert lookup. Only the first
	// page is ever requested, so this is also the per-element alert cap.
	PageSize int `yaml:"page_size"`

	// RowLimit caps each discovery query's result size. 0 means unlimited.
	// Intended for performance testing against large installs.
	RowLimit int `yaml:"row_limit"`

	// Sample selects how the merged element list is presented.
	Sample SampleConfig `yaml:"sample"`
}

// SampleConfig selects one of two mutually exclusive presentation modes.
type SampleConfig struct {
	// Mode is one of: sorted | random. "sorted" orders elements by caption;
	// "random" replaces the list with a fixed-size uniform sample.
	Mode string `yaml:"mode"`

	// Size is the sample size used when Mode == "random".
	Size int `yaml:"size"`
}

// OutputConfig controls how the final report is rendered.
type OutputConfig struct {
	// Format is one of: csv | json.
	Format string `yaml:"format"`

	// Path is the output file. Empty or "-" writes to stdout.
	Path string `yaml:"path"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			WebScheme: DefaultWebScheme,
			SWISPort:  DefaultSWISPort,
		},
		Report: ReportConfig{
			PageSize: DefaultPageSize,
			Sample: SampleConfig{
				Mode: DefaultSampleMode,
				Size: DefaultSampleSize,
			},
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	switch cfg.Server.WebScheme {
	case "http", "https":
	default:
		return fmt.Errorf("server.web_scheme must be http or https, got %q", cfg.Server.WebScheme)
	}
	if cfg.Server.SWISPort <= 0 || cfg.Server.SWISPort > 65535 {
		return fmt.Errorf("server.swis_port must be in 1..65535, got %d", cfg.Server.SWISPort)
	}
	if cfg.Server.Username == "" {
		return fmt.Errorf("server.username is required")
	}
	if cfg.Server.PasswordEnv == "" {
		return fmt.Errorf("server.password_env is required")
	}
	if cfg.Report.PageSize <= 0 {
		return fmt.Errorf("report.page_size must be positive")
	}
	if cfg.Report.RowLimit < 0 {
		return fmt.Errorf("report.row_limit must not be negative")
	}
	switch cfg.Report.Sample.Mode {
	case "sorted":
	case "random":
		if cfg.Report.Sample.Size <= 0 {
			return fmt.Errorf("report.sample.size must be positive in random mode")
		}
	default:
		return fmt.Errorf("report.sample.mode must be sorted or random, got %q", cfg.Report.Sample.Mode)
	}
	switch cfg.Output.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("output.format must be csv or json, got %q", cfg.Output.Format)
	}
	return nil
}
