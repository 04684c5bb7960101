package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadDefaultConfig(t *testing.T) {
	t.Setenv("GUTENBROWSE_API_URL", "https://gutendex.com/")

	opts, err := GetConfig()
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}

	t.Logf(`Config
		APIURL: %s
		Host: %s
		Port: %d
		LogLevel: %s
		`, opts.APIURL, opts.Host, opts.Port, opts.LogLevel)

	if opts.APIURL != "https://gutendex.com" {
		t.Errorf("api_url not trimmed, got %q", opts.APIURL)
	}
	if opts.Port != defaultPort {
		t.Errorf("port incorrect")
	}
	if opts.RequestTimeout != defaultRequestTimeout {
		t.Errorf("request_timeout incorrect")
	}
	if Opts != opts {
		t.Errorf("Opts not set")
	}
}

func TestMissingAPIURL(t *testing.T) {
	t.Setenv("GUTENBROWSE_API_URL", "")

	_, err := GetConfig()
	if !errors.Is(err, ErrMissingAPIURL) {
		t.Fatalf("expected ErrMissingAPIURL, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("GUTENBROWSE_API_URL", "")
	t.Setenv("GUTENBROWSE_PORT", "")

	file := filepath.Join(t.TempDir(), "config_test.toml")
	content := `api_url = "http://127.0.0.1:9000"
host = "127.0.0.1"
port = 2333
log_file = "test.log"
log_level = "DEBUG"
request_timeout = "3s"
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := ParseFile(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Host != "127.0.0.1" {
		t.Errorf("host incorrect")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("log_file incorrect")
	}
	if opts.Port != 2333 {
		t.Errorf("port incorrect")
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log_level incorrect")
	}
	if opts.RequestTimeout != 3*time.Second {
		t.Errorf("request_timeout incorrect, got %s", opts.RequestTimeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte("api_url: http://file.example\nport: 2333\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GUTENBROWSE_API_URL", "http://env.example")
	t.Setenv("GUTENBROWSE_PORT", "9090")

	opts, err := ParseFile(file)
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.APIURL != "http://env.example" {
		t.Errorf("api_url should come from env, got %q", opts.APIURL)
	}
	if opts.Port != 9090 {
		t.Errorf("port should come from env, got %d", opts.Port)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(o *Options){
		"no scheme":     func(o *Options) { o.APIURL = "gutendex.com" },
		"bad port":      func(o *Options) { o.Port = 70000 },
		"bad level":     func(o *Options) { o.LogLevel = "loud" },
		"negative rate": func(o *Options) { o.RequestsPerSecond = -1 },
		"no sessions":   func(o *Options) { o.SessionCacheSize = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			o := GetDefaultOptions()
			o.APIURL = "https://gutendex.com"
			mutate(o)
			if err := o.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
