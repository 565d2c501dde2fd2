// Package config loads and validates report configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAPIURL is the public endpoint listing regulatory bodies.
const DefaultAPIURL = "https://api.kontur.ru/dc.contacts/v1/cus"

// Storage backends accepted by storage.backend.
const (
	BackendLocal  = "local"
	BackendGCS    = "gcs"
	BackendMemory = "memory"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Report  ReportConfig  `mapstructure:"report"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Output  OutputConfig  `mapstructure:"output"`
	Storage StorageConfig `mapstructure:"storage"`
	PubSub  PubSubConfig  `mapstructure:"pubsub"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig points at the data source.
type APIConfig struct {
	URL string `mapstructure:"url"`
}

// ReportConfig controls what the report contains.
type ReportConfig struct {
	RegionCode string `mapstructure:"region_code"`
	// Timezone is an IANA name; empty means the process local zone.
	Timezone string `mapstructure:"timezone"`
}

// HTTPConfig configures the fetcher.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxBodyBytes   int    `mapstructure:"max_body_bytes"`
	UserAgent      string `mapstructure:"user_agent"`
}

// OutputConfig names the produced document.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Prefix   string `mapstructure:"prefix"`
	FileName string `mapstructure:"file_name"`
}

// StorageConfig selects the blob backend.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"`
	GCSBucket string `mapstructure:"gcs_bucket"`
}

// PubSubConfig holds metadata for completion notifications.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// MetricsConfig configures the optional Pushgateway push.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"region":      "report.region_code",
	"url":         "api.url",
	"output-dir":  "output.dir",
	"file-name":   "output.file_name",
	"storage":     "storage.backend",
	"development": "logging.development",
}

// Load builds a Config from disk, environment and (optionally) command
// line flags. Flags that were not set on the command line do not override
// file or environment values.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CUSREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("report.region_code", "18")
	v.SetDefault("report.timezone", "")
	v.SetDefault("http.timeout_seconds", 60)
	v.SetDefault("http.max_body_bytes", 0)
	v.SetDefault("http.user_agent", "cusreport/1.0")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.prefix", "")
	v.SetDefault("output.file_name", "")
	v.SetDefault("storage.backend", BackendLocal)
	v.SetDefault("storage.gcs_bucket", "")
	v.SetDefault("pubsub.project_id", "")
	v.SetDefault("pubsub.topic_name", "")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("api.url must be set")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("api.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.url must use http or https, got %q", u.Scheme)
	}
	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("http.timeout_seconds must be >= 0")
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("http.max_body_bytes must be >= 0")
	}
	switch c.Storage.Backend {
	case BackendLocal, BackendMemory:
	case BackendGCS:
		if c.Storage.GCSBucket == "" {
			return fmt.Errorf("storage.gcs_bucket must be set when storage.backend is gcs")
		}
	default:
		return fmt.Errorf("storage.backend %q is not supported", c.Storage.Backend)
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when pubsub.topic_name is set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves report.timezone. Empty means time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}
	return loc, nil
}

// Timeout converts http.timeout_seconds into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
