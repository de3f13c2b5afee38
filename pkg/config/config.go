package config

import (
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvironmentTest turns on the test-only routes.
const EnvironmentTest = "test"

const (
	configFileEnv     = "CONFIG_FILE"
	defaultConfigFile = "/config/stacks.yaml"
)

// Config is loaded from the YAML file named by CONFIG_FILE and then from the
// environment. Every key can be set in either place: `server_port` in the file
// is SERVER_PORT in the environment, and the environment wins.
type Config struct {
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	DefaultPageSize           int           `koanf:"default_page_size"`
	Environment               string        `koanf:"environment"`
	MaxPageSize               int           `koanf:"max_page_size"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

var requiredFields = []string{"DatabaseFilePath"}

func defaults() *Config {
	return &Config{
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		DefaultPageSize:           10,
		Environment:               "development",
		MaxPageSize:               20,
		ServerHost:                "0.0.0.0",
		ServerPort:                5200,
	}
}

func New() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv(configFileEnv)
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.WithStack(err)
	}

	err := k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, field := range requiredFields {
		key := toSnakeCase(field)
		if k.String(key) == "" {
			return nil, errors.Errorf("missing required config: %s (%s)", strcase.ToScreamingSnake(field), key)
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if cfg.DefaultPageSize < 1 {
		return nil, errors.New("default_page_size must be at least 1")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		return nil, errors.New("max_page_size must not be less than default_page_size")
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database.
func NewForTest() *Config {
	cfg := defaults()
	cfg.DatabaseFilePath = ":memory:"
	cfg.Environment = EnvironmentTest
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func toSnakeCase(s string) string {
	return strcase.ToSnake(s)
}
