// Package config loads service and CLI configuration.
//
// Precedence: command-line flags > environment (LABELPRINT_*) > config file > defaults.
// Secrets are accepted from the environment only.
package config

import "time"

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "LABELPRINT"

// Config is the root configuration.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Storage  StorageConfig
	Printing PrintingConfig
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// Migrate applies embedded migrations on startup.
	Migrate bool
}

type LogConfig struct {
	Level       string
	Development bool
}

type AuthConfig struct {
	// Enabled requires a bearer token on every API route.
	Enabled   bool
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

type StorageConfig struct {
	// Driver is "local" or "s3".
	Driver string
	// CompressThreshold is the size in bytes above which command files are
	// stored zstd-compressed. Zero disables compression.
	CompressThreshold int
	URLExpiry         time.Duration
	Local             LocalStorageConfig
	S3                S3StorageConfig
}

type LocalStorageConfig struct {
	BaseDir   string
	PublicURL string
}

type S3StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

type PrintingConfig struct {
	MaxQuantity      int
	DefaultDialect   string
	DefaultSymbology string
	Border           bool
	// ChunkSize bounds a single write to a printer connection.
	ChunkSize     int
	DocumentDelay time.Duration
	DialTimeout   time.Duration
	WriteTimeout  time.Duration
	DefaultPort   int
}
