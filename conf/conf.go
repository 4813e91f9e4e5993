package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/kr/pretty"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v2"
)

var (
	conf *Config
	once sync.Once
)

type Config struct {
	Env      string
	Hertz    Hertz    `yaml:"hertz"`
	Database Database `yaml:"database"`
	Kafka    Kafka    `yaml:"kafka"`
	Stream   Stream   `yaml:"stream"`
	Registry Registry `yaml:"registry"`
}

type Hertz struct {
	Service         string `yaml:"service" validate:"nonzero"`
	Address         string `yaml:"address" validate:"nonzero"`
	EnablePprof     bool   `yaml:"enable_pprof"`
	EnableGzip      bool   `yaml:"enable_gzip"`
	EnableAccessLog bool   `yaml:"enable_access_log"`
	LogLevel        string `yaml:"log_level"`
	LogFileName     string `yaml:"log_file_name"`
	LogMaxSize      int    `yaml:"log_max_size"`
	LogMaxBackups   int    `yaml:"log_max_backups"`
	LogMaxAge       int    `yaml:"log_max_age"`
}

// Database selects the gorm dialector. sqlite is an embedded file, postgres a server DSN.
type Database struct {
	Driver            string `yaml:"driver" validate:"regexp=^(sqlite|postgres)$"`
	DSN               string `yaml:"dsn" validate:"nonzero"`
	MaxOpenConns      int    `yaml:"max_open_conns"`
	MaxIdleConns      int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMs int64  `yaml:"conn_max_life_time_ms"`
	LogLevel          string `yaml:"log_level"`
	SlowThresholdMs   int64  `yaml:"slow_threshold_ms"`
}

// Kafka publishing is disabled when Brokers is empty.
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Stream struct {
	Enable   bool `yaml:"enable"`
	PoolSize int  `yaml:"pool_size"`
}

// Registry registration is skipped when RegistryAddress is empty.
type Registry struct {
	RegistryAddress []string `yaml:"registry_address"`
	ServiceID       string   `yaml:"service_id"`
	ServiceHost     string   `yaml:"service_host"`
	ServicePort     int      `yaml:"service_port"`
}

// GetConf gets configuration instance
func GetConf() *Config {
	once.Do(initConf)
	return conf
}

func initConf() {
	prefix := "conf"
	confFileRelPath := filepath.Join(prefix, filepath.Join(GetEnv(), "conf.yaml"))
	c, err := Load(confFileRelPath)
	if err != nil {
		hlog.Errorf("load config error - %v", err)
		panic(err)
	}
	c.Env = GetEnv()
	conf = c

	pretty.Printf("%+v\n", conf)
}

// Load reads, defaults and validates one YAML config file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	c := new(Config)
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	c.applyDefaults()
	if err := validator.Validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Hertz.Service == "" {
		c.Hertz.Service = "Orders API"
	}
	if c.Hertz.Address == "" {
		c.Hertz.Address = ":8000"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "orders.db"
	}
	if c.Database.SlowThresholdMs == 0 {
		c.Database.SlowThresholdMs = 200
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "orders.created"
	}
	if c.Stream.PoolSize <= 0 {
		c.Stream.PoolSize = 1024
	}
}

func GetEnv() string {
	e := os.Getenv("GO_ENV")
	if len(e) == 0 {
		return "test"
	}
	return e
}

func LogLevel() hlog.Level {
	return ParseLogLevel(GetConf().Hertz.LogLevel)
}

func ParseLogLevel(level string) hlog.Level {
	switch level {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "info":
		return hlog.LevelInfo
	case "notice":
		return hlog.LevelNotice
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	case "fatal":
		return hlog.LevelFatal
	default:
		return hlog.LevelInfo
	}
}
