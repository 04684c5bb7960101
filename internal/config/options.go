package config

import "time"

const (
	defaultLogFile           = "gutenbrowse.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultRequestTimeout    = 15 * time.Second
	defaultRequestsPerSecond = 0
	defaultUserAgent         = "gutenbrowse/" + defaultVersion
	defaultSessionCacheSize  = 1024
	defaultCompression       = true
	defaultVersion           = "0.1.0"
)

// envPrefix is prepended to every key when looking up environment variables,
// e.g. api_url is read from GUTENBROWSE_API_URL.
const envPrefix = "GUTENBROWSE"

// Options holds the runtime configuration.
//
// mapstructure tags are used instead of json because viper decodes through mapstructure.
type Options struct {
	// APIURL is the base URL of the Gutendex API, without the /books suffix. Required.
	APIURL string `mapstructure:"api_url"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size in megabytes of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the rotated log files
	LogCompress bool `mapstructure:"log_compress"`
	// RequestTimeout bounds a single request to the API.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// RequestsPerSecond limits outbound API calls. Zero disables the limit.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	UserAgent         string  `mapstructure:"user_agent"`
	// SessionCacheSize is the number of browser sessions kept in memory.
	SessionCacheSize int `mapstructure:"session_cache_size"`
	// Compression enables brotli encoding of responses for clients that accept it.
	Compression bool `mapstructure:"compression"`
	Version     string `mapstructure:"-"`
}

// Opts is the process-wide configuration, set by GetConfig or Load.
var Opts *Options

func GetDefaultOptions() *Options {
	return &Options{
		Host:              defaultHost,
		Port:              defaultPort,
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSecond,
		UserAgent:         defaultUserAgent,
		SessionCacheSize:  defaultSessionCacheSize,
		Compression:       defaultCompression,
		Version:           defaultVersion,
	}
}
