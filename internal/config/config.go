package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ErrMissingAPIURL is returned when no API base URL is configured. There is no
// sensible default, so the process cannot start without one.
var ErrMissingAPIURL = errors.New("api_url must be set (GUTENBROWSE_API_URL)")

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// GetConfig loads the configuration from defaults and the environment.
func GetConfig() (*Options, error) {
	return Load("")
}

// ParseFile loads the configuration from defaults, the given file and the environment.
func ParseFile(file string) (*Options, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "unable to access config file %s", file)
	}
	return Load(file)
}

// Load builds Options from defaults, then the optional config file, then
// GUTENBROWSE_* environment variables, and validates the result. On success
// the result is also stored in Opts.
func Load(file string) (*Options, error) {
	v := viper.New()
	setDefaults(v, GetDefaultOptions())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "unable to bind env for %s", key)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	opts := GetDefaultOptions()
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	opts.APIURL = strings.TrimRight(strings.TrimSpace(opts.APIURL), "/")
	opts.LogLevel = strings.ToLower(opts.LogLevel)

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	Opts = opts
	return opts, nil
}

var keys = []string{
	"api_url",
	"host",
	"port",
	"log_file",
	"log_level",
	"log_file_max_size",
	"log_file_max_backups",
	"log_file_max_age",
	"log_compress",
	"request_timeout",
	"requests_per_second",
	"user_agent",
	"session_cache_size",
	"compression",
}

func setDefaults(v *viper.Viper, d *Options) {
	v.SetDefault("host", d.Host)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file_max_size", d.LogFileMaxSize)
	v.SetDefault("log_file_max_backups", d.LogFileMaxBackups)
	v.SetDefault("log_file_max_age", d.LogFileMaxAge)
	v.SetDefault("log_compress", d.LogCompress)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("requests_per_second", d.RequestsPerSecond)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("session_cache_size", d.SessionCacheSize)
	v.SetDefault("compression", d.Compression)
}

// Validate reports the first configuration problem found.
func (o *Options) Validate() error {
	if o.APIURL == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(o.APIURL)
	if err != nil {
		return errors.Wrapf(err, "invalid api_url %q", o.APIURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.Errorf("invalid api_url %q: scheme and host are required", o.APIURL)
	}
	if o.Port <= 0 || o.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", o.Port)
	}
	if !logLevels[o.LogLevel] {
		return errors.Errorf("unknown log_level %q", o.LogLevel)
	}
	if o.RequestsPerSecond < 0 {
		return errors.New("requests_per_second cannot be negative")
	}
	if o.SessionCacheSize < 1 {
		return errors.New("session_cache_size must be at least 1")
	}
	return nil
}
