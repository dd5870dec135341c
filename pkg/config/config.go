package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	ContentSafety ContentSafetyConfig `mapstructure:"content_safety"`
	Arbiter       ArbiterConfig       `mapstructure:"arbiter"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ContentSafetyConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	APIVersion     string `mapstructure:"api_version"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type ArbiterConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type PipelineConfig struct {
	ExclusionList   string `mapstructure:"exclusion_list"`
	StrictThreshold string `mapstructure:"strict_threshold"`
	LooseThreshold  string `mapstructure:"loose_threshold"`
}

type RedisConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type TelemetryConfig struct {
	Exporter string                 `mapstructure:"exporter"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads config.yaml from the given path (environment variables
// override, SERVER_PORT style) and validates eagerly: a config hole fails
// here, at startup, never mid-evaluation.
func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No file is fine; environment variables may carry everything.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.ContentSafety.TimeoutSeconds == 0 {
		c.ContentSafety.TimeoutSeconds = 30
	}
	if c.Pipeline.StrictThreshold == "" {
		c.Pipeline.StrictThreshold = "medium"
	}
	if c.Pipeline.LooseThreshold == "" {
		c.Pipeline.LooseThreshold = "low"
	}
	if c.Redis.TTLSeconds == 0 {
		c.Redis.TTLSeconds = 300
	}
}

func (c *Config) Validate() error {
	if c.ContentSafety.Endpoint == "" {
		return errors.New("content_safety.endpoint is required")
	}
	if c.ContentSafety.APIKey == "" {
		return errors.New("content_safety.api_key is required")
	}
	if c.Arbiter.BaseURL == "" {
		return errors.New("arbiter.base_url is required")
	}
	if c.Arbiter.Model == "" {
		return errors.New("arbiter.model is required")
	}
	if c.Pipeline.ExclusionList == "" {
		return errors.New("pipeline.exclusion_list is required")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return errors.New("redis.host is required when redis is enabled")
	}
	return nil
}
