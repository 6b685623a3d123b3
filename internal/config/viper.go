package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// secretKeys may only come from the environment.
var secretKeys = []string{
	"auth.jwt_secret",
	"storage.s3.secret_access_key",
}

// Load reads configuration from an optional file and the environment.
func Load(configPath string) (*Config, error) {
	return LoadWith(viper.New(), configPath)
}

// LoadWith uses v, which may already carry bound command-line flags.
func LoadWith(v *viper.Viper, configPath string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := validateNoSecretsInConfig(v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("database.dsn"),
			MaxConns:        v.GetInt32("database.max_conns"),
			MinConns:        v.GetInt32("database.min_conns"),
			MaxConnLifetime: v.GetDuration("database.max_conn_lifetime"),
			MaxConnIdleTime: v.GetDuration("database.max_conn_idle_time"),
			Migrate:         v.GetBool("database.migrate"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Auth: AuthConfig{
			Enabled:   v.GetBool("auth.enabled"),
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetStringSlice("cors.allowed_origins")),
			AllowedMethods:   splitList(v.GetStringSlice("cors.allowed_methods")),
			AllowedHeaders:   splitList(v.GetStringSlice("cors.allowed_headers")),
			AllowCredentials: v.GetBool("cors.allow_credentials"),
			MaxAge:           v.GetDuration("cors.max_age"),
		},
		Storage: StorageConfig{
			Driver:            v.GetString("storage.driver"),
			CompressThreshold: v.GetInt("storage.compress_threshold"),
			URLExpiry:         v.GetDuration("storage.url_expiry"),
			Local: LocalStorageConfig{
				BaseDir:   v.GetString("storage.local.base_dir"),
				PublicURL: v.GetString("storage.local.public_url"),
			},
			S3: S3StorageConfig{
				Bucket:          v.GetString("storage.s3.bucket"),
				Region:          v.GetString("storage.s3.region"),
				Endpoint:        v.GetString("storage.s3.endpoint"),
				PublicURL:       v.GetString("storage.s3.public_url"),
				AccessKeyID:     v.GetString("storage.s3.access_key_id"),
				SecretAccessKey: v.GetString("storage.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("storage.s3.use_path_style"),
			},
		},
		Printing: PrintingConfig{
			MaxQuantity:      v.GetInt("printing.max_quantity"),
			DefaultDialect:   v.GetString("printing.default_dialect"),
			DefaultSymbology: v.GetString("printing.default_symbology"),
			Border:           v.GetBool("printing.border"),
			ChunkSize:        v.GetInt("printing.chunk_size"),
			DocumentDelay:    v.GetDuration("printing.document_delay"),
			DialTimeout:      v.GetDuration("printing.dial_timeout"),
			WriteTimeout:     v.GetDuration("printing.write_timeout"),
			DefaultPort:      v.GetInt("printing.default_port"),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.dsn", "postgres://localhost:5432/labelprint?sslmode=disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)
	v.SetDefault("database.migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.issuer", "labelprint")
	v.SetDefault("auth.token_ttl", 12*time.Hour)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 12*time.Hour)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.compress_threshold", 10*1024)
	v.SetDefault("storage.url_expiry", time.Hour)
	v.SetDefault("storage.local.base_dir", "./data/print-files")
	v.SetDefault("storage.local.public_url", "/api/v1/files")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.use_path_style", true)

	v.SetDefault("printing.max_quantity", 1000)
	v.SetDefault("printing.default_dialect", "tspl")
	v.SetDefault("printing.default_symbology", "barcode")
	v.SetDefault("printing.border", true)
	v.SetDefault("printing.chunk_size", 512)
	v.SetDefault("printing.document_delay", 100*time.Millisecond)
	v.SetDefault("printing.dial_timeout", 5*time.Second)
	v.SetDefault("printing.write_timeout", 30*time.Second)
	v.SetDefault("printing.default_port", 9100)
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Printing.MaxQuantity <= 0 {
		return fmt.Errorf("printing.max_quantity must be positive, got %d", cfg.Printing.MaxQuantity)
	}
	if cfg.Printing.ChunkSize <= 0 {
		return fmt.Errorf("printing.chunk_size must be positive, got %d", cfg.Printing.ChunkSize)
	}
	if cfg.Printing.DocumentDelay < 0 {
		return fmt.Errorf("printing.document_delay must not be negative, got %v", cfg.Printing.DocumentDelay)
	}
	switch cfg.Storage.Driver {
	case "local":
	case "s3":
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unsupported storage.driver %q", cfg.Storage.Driver)
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but %s_AUTH_JWT_SECRET is not set", EnvPrefix)
	}
	return nil
}

// validateNoSecretsInConfig keeps secrets out of files.
func validateNoSecretsInConfig(v *viper.Viper) error {
	for _, key := range secretKeys {
		if v.InConfig(key) {
			envName := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
			return fmt.Errorf("%s is not allowed in config files (use %s environment variable)", key, envName)
		}
	}
	return nil
}

// splitList accepts both list values and a single comma-separated string,
// which is what an environment variable yields.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
