package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting the application reads at startup.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Export   ExportConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	RabbitMQ RabbitMQConfig
}

type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	Path   string // SQLite file
	DSN    string // Postgres connection string
}

type LogConfig struct {
	Level string
	File  string
}

type ExportConfig struct {
	Dir string
}

type HTTPConfig struct {
	Addr string
}

type AuthConfig struct {
	Secret string
	TTL    time.Duration
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// EnvPrefix is prepended to every environment override, e.g. COMMERCE_DATABASE_PATH.
const EnvPrefix = "COMMERCE"

// New returns a Viper instance with defaults and environment overrides applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "commerce.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "commerce.log")
	v.SetDefault("export.dir", ".")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.ttl", "24h")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "records")
	v.SetDefault("rabbitmq.queue", "records_watch")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and builds a Config from v.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			Path:   v.GetString("database.path"),
			DSN:    v.GetString("database.dsn"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Export: ExportConfig{Dir: v.GetString("export.dir")},
		HTTP:   HTTPConfig{Addr: v.GetString("http.addr")},
		Auth: AuthConfig{
			Secret: v.GetString("auth.secret"),
			TTL:    v.GetDuration("auth.ttl"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("rabbitmq.url"),
			Exchange: v.GetString("rabbitmq.exchange"),
			Queue:    v.GetString("rabbitmq.queue"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.TTL <= 0 {
		return fmt.Errorf("auth.ttl must be positive")
	}
	return nil
}
