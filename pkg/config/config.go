package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PriceSampler/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string          `yaml:"environment" default:"development" validate:"required"`
	Server      ServerConfig    `yaml:"server"`
	Log         LogConfig       `yaml:"log"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	Sampling    SamplingConfig  `yaml:"sampling"`
	Output      OutputConfig    `yaml:"output"`
	Kafka       KafkaConfig     `yaml:"kafka"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Redis       RedisConfig     `yaml:"redis"`

	outputDerived bool
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"127.0.0.1"`
	Port            int           `yaml:"port" default:"3000" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	Output string `yaml:"output" default:"stdout" validate:"required"`
	// Rotation applies when Output is a file path.
	MaxSizeMB  int  `yaml:"max_size_mb" default:"100" validate:"gte=1"`
	MaxBackups int  `yaml:"max_backups" default:"3" validate:"gte=0"`
	MaxAgeDays int  `yaml:"max_age_days" default:"7" validate:"gte=0"`
	Compress   bool `yaml:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

// SamplingConfig describes the corpus: one directory per group under BaseDir.
type SamplingConfig struct {
	BaseDir    string   `yaml:"base_dir" default:"./data/stock_price_data_files" validate:"required"`
	Groups     []string `yaml:"groups" default:"[\"NASDAQ\",\"LSE\",\"NYSE\"]" validate:"min=1,dive,required"`
	Extension  string   `yaml:"extension" default:".csv" validate:"required,startswith=."`
	WindowSize int      `yaml:"window_size" default:"10" validate:"gte=2"`
	// MaxConcurrency caps concurrent reads and writes; 0 means unbounded.
	MaxConcurrency int `yaml:"max_concurrency" default:"0" validate:"gte=0"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format" default:"csv" validate:"oneof=csv xlsx"`
}

type KafkaConfig struct {
	Enabled      bool           `yaml:"enabled"`
	Brokers      []string       `yaml:"brokers" validate:"required_if=Enabled true"`
	Topic        string         `yaml:"topic" default:"sampler.forecasts"`
	RequiredAcks int            `yaml:"required_acks" default:"-1"`
	Compression  string         `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
	Producer     ProducerConfig `yaml:"producer"`
}

type ProducerConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	Linger       time.Duration `yaml:"linger" default:"100ms"`
	BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
	BatchSize    int           `yaml:"batch_size" default:"100"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
	Async        bool          `yaml:"async"`
}

type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Backend      string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
	Capacity     float64       `yaml:"capacity" default:"20" validate:"gt=0"`
	RefillPerSec float64       `yaml:"refill_per_sec" default:"10" validate:"gte=0"`
	Window       time.Duration `yaml:"window" default:"1s"`
}

type RedisConfig struct {
	Host         string        `yaml:"host" default:"localhost"`
	Port         int           `yaml:"port" default:"6379"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Prefix       string        `yaml:"prefix" default:"pricesampler"`
	PoolSize     int           `yaml:"pool_size" default:"10"`
	MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
	PoolTimeout  time.Duration `yaml:"pool_timeout" default:"30s"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file on top of the tag defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes raw YAML on top of the tag defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.fill()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	baseChanged := false
	if v := os.Getenv("SAMPLER_BASE_DIR"); v != "" {
		c.Sampling.BaseDir = v
		baseChanged = true
	}
	if v := os.Getenv("SAMPLER_GROUPS"); v != "" {
		c.Sampling.Groups = util.SplitNonEmpty(v, ",")
	}
	if v := os.Getenv("SAMPLER_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	} else if baseChanged && c.outputDerived {
		c.Output.Dir = filepath.Join(c.Sampling.BaseDir, "output")
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitNonEmpty(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) fill() {
	if c.Output.Dir == "" {
		c.Output.Dir = filepath.Join(c.Sampling.BaseDir, "output")
		c.outputDerived = true
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Sampling.Groups))
	for _, g := range c.Sampling.Groups {
		if _, dup := seen[g]; dup {
			return fmt.Errorf("sampling.groups contains duplicate %q", g)
		}
		seen[g] = struct{}{}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers must not be empty when kafka is enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.Backend == "memory" && c.RateLimit.RefillPerSec == 0 {
		return fmt.Errorf("rate_limit.refill_per_sec must be > 0 for the memory backend")
	}
	return nil
}

// ArtifactExt is the file extension of forecast artifacts.
func (c *Config) ArtifactExt() string {
	return "." + c.Output.Format
}

// GroupDir returns the source directory of a group.
func (c *Config) GroupDir(group string) string {
	return filepath.Join(c.Sampling.BaseDir, group)
}
