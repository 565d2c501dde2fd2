package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.URL != DefaultAPIURL {
		t.Fatalf("expected default url, got %q", cfg.API.URL)
	}
	if cfg.Report.RegionCode != "18" {
		t.Fatalf("expected region 18, got %q", cfg.Report.RegionCode)
	}
	if cfg.Storage.Backend != BackendLocal || cfg.Output.Dir != "." {
		t.Fatalf("expected local storage in current dir, got %+v %+v", cfg.Storage, cfg.Output)
	}
	if cfg.Timeout() != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %v", cfg.Timeout())
	}
	if !cfg.Logging.Development {
		t.Fatal("expected development logging by default")
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected local location, got %v %v", loc, err)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
api:
  url: https://example.com/cus
report:
  region_code: "77"
  timezone: Europe/Moscow
http:
  timeout_seconds: 5
  max_body_bytes: 1048576
  user_agent: test-agent
output:
  prefix: reports
  file_name: out.docx
storage:
  backend: gcs
  gcs_bucket: bucket
pubsub:
  project_id: proj
  topic_name: reports
metrics:
  pushgateway_url: http://pushgateway:9091
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.URL != "https://example.com/cus" || cfg.Report.RegionCode != "77" {
		t.Fatalf("expected api/report overrides, got %+v %+v", cfg.API, cfg.Report)
	}
	if cfg.HTTP.MaxBodyBytes != 1048576 || cfg.HTTP.UserAgent != "test-agent" {
		t.Fatalf("expected http overrides, got %+v", cfg.HTTP)
	}
	if cfg.Output.Prefix != "reports" || cfg.Output.FileName != "out.docx" {
		t.Fatalf("expected output overrides, got %+v", cfg.Output)
	}
	if cfg.Storage.Backend != BackendGCS || cfg.Storage.GCSBucket != "bucket" {
		t.Fatalf("expected gcs storage, got %+v", cfg.Storage)
	}
	if cfg.PubSub.TopicName != "reports" || cfg.Metrics.PushgatewayURL == "" {
		t.Fatalf("expected pubsub and metrics overrides")
	}
	if cfg.Logging.Development {
		t.Fatal("expected production logging")
	}
	if got := cfg.Timeout(); got != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", got)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Moscow" {
		t.Fatalf("expected Europe/Moscow, got %v %v", loc, err)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("CUSREPORT_REPORT_REGION_CODE", "50")
	t.Setenv("CUSREPORT_OUTPUT_DIR", "/tmp/from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("region", "18", "")
	flags.String("output-dir", ".", "")
	if err := flags.Parse([]string{"--region", "16"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Report.RegionCode != "16" {
		t.Fatalf("expected flag region 16, got %q", cfg.Report.RegionCode)
	}
	if cfg.Output.Dir != "/tmp/from-env" {
		t.Fatalf("expected unset flag to keep env value, got %q", cfg.Output.Dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		API:     APIConfig{URL: DefaultAPIURL},
		HTTP:    HTTPConfig{TimeoutSeconds: 10},
		Storage: StorageConfig{Backend: BackendLocal},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "empty url",
			cfg: func() Config {
				c := base
				c.API.URL = ""
				return c
			}(),
			want: "api.url",
		},
		{
			name: "non http url",
			cfg: func() Config {
				c := base
				c.API.URL = "ftp://example.com/cus"
				return c
			}(),
			want: "api.url",
		},
		{
			name: "negative timeout",
			cfg: func() Config {
				c := base
				c.HTTP.TimeoutSeconds = -1
				return c
			}(),
			want: "http.timeout_seconds",
		},
		{
			name: "negative body size",
			cfg: func() Config {
				c := base
				c.HTTP.MaxBodyBytes = -1
				return c
			}(),
			want: "http.max_body_bytes",
		},
		{
			name: "unknown backend",
			cfg: func() Config {
				c := base
				c.Storage.Backend = "s3"
				return c
			}(),
			want: "storage.backend",
		},
		{
			name: "gcs without bucket",
			cfg: func() Config {
				c := base
				c.Storage.Backend = BackendGCS
				return c
			}(),
			want: "storage.gcs_bucket",
		},
		{
			name: "topic without project",
			cfg: func() Config {
				c := base
				c.PubSub.TopicName = "reports"
				return c
			}(),
			want: "pubsub.project_id",
		},
		{
			name: "unknown timezone",
			cfg: func() Config {
				c := base
				c.Report.Timezone = "Mars/Olympus"
				return c
			}(),
			want: "report.timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
