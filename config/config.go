package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getzep/zep-ner/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

const (
	DefaultPort            = 7777
	DefaultWorkers         = 10
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxRecvMsgSize  = 4 << 20
)

var (
	ErrInvalidPort      = errors.New("server.port must be between 0 and 65535")
	ErrInvalidWorkers   = errors.New("server.workers must be at least 1")
	ErrInvalidQueueSize = errors.New("server.queue_size must not be negative")
)

// SetDefaults registers the default values on v. It is exported so that
// the CLI can bind flags against the same viper instance before loading.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.workers", DefaultWorkers)
	v.SetDefault("server.queue_size", 0)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_recv_msg_size", DefaultMaxRecvMsgSize)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("toolkit.binary", false)
}

// LoadConfig loads the config file and ENV variables into a Config struct
// using the global viper instance.
func LoadConfig(configFile string) (*Config, error) {
	return Load(viper.GetViper(), configFile)
}

// Load reads configuration into v. A missing config.yaml is not an error
// unless configFile names it explicitly.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix("ZEP_NER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
		log.Debug("no config file found, using defaults and environment")
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges that viper cannot enforce.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Server.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Server.Workers)
	}
	if c.Server.QueueSize < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQueueSize, c.Server.QueueSize)
	}
	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	internal.SetLogFormat(cfg.Log.Format)
	log.Debug("Log level set to: ", level)
}
