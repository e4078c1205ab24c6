package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Redis     RedisConfig     `yaml:"redis"`
	Logger    LoggerConfig    `yaml:"logger"`
	Queue     QueueConfig     `yaml:"queue"`
	Mining    MiningConfig    `yaml:"mining"`
	Energy    EnergyConfig    `yaml:"energy"`
	Rental    RentalConfig    `yaml:"rental"`
	LLM       LLMConfig       `yaml:"llm"`
	Collector CollectorConfig `yaml:"collector"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Mode   string `yaml:"mode"`    // debug, release
	APIKey string `yaml:"api_key"` // API key for request authentication (optional, if empty, auth is disabled)
}

// MySQLConfig MySQL configuration
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RedisConfig Redis configuration
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// QueueConfig queue configuration
type QueueConfig struct {
	Concurrency int `yaml:"concurrency"`  // queue processing concurrency
	MaxRetry    int `yaml:"max_retry"`    // maximum retry count
	TaskTimeout int `yaml:"task_timeout"` // task timeout (seconds)
}

// MiningConfig mining telemetry connector configuration
type MiningConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	Software  string `yaml:"software"`  // nicehash or a custom pool backend
	CoinsURL  string `yaml:"coins_url"` // coin profitability feed
	UseMock   bool   `yaml:"use_mock"`
}

// EnergyConfig energy metering connector configuration
type EnergyConfig struct {
	MeterURL   string  `yaml:"meter_url"`
	MeterToken string  `yaml:"meter_token"`
	SolarURL   string  `yaml:"solar_url"`
	SolarToken string  `yaml:"solar_token"`
	CostPerKWh float64 `yaml:"cost_per_kwh"` // default energy price, EUR/kWh
	UseMock    bool    `yaml:"use_mock"`
}

// RentalConfig GPU rental marketplace connector configuration
type RentalConfig struct {
	APIURL  string `yaml:"api_url"`
	APIKey  string `yaml:"api_key"`
	UseMock bool   `yaml:"use_mock"`
}

// LLMConfig text generation backend configuration
type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max_tokens"`      // bound on generated output length
	TimeoutSeconds int    `yaml:"timeout_seconds"` // bound on one generation call
}

// CollectorConfig background sample collector configuration
type CollectorConfig struct {
	Enabled  bool `yaml:"enabled"`
	Interval int  `yaml:"interval"` // sampling interval (seconds)
}

// Init initializes configuration
func Init() error {
	// .env is optional; connector credentials are commonly supplied this way
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	GlobalConfig = &cfg
	return nil
}

// applyEnvOverrides lets environment variables win over file values for
// credentials and mock switches.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Mining.APIURL, "MINING_API_URL")
	setString(&cfg.Mining.APIKey, "MINING_API_KEY")
	setString(&cfg.Mining.APISecret, "MINING_API_SECRET")
	setString(&cfg.Mining.Software, "MINING_SOFTWARE")
	setString(&cfg.Mining.CoinsURL, "COINS_API_URL")
	setBool(&cfg.Mining.UseMock, "USE_MOCK_MINING_DATA")

	setString(&cfg.Energy.MeterURL, "ENERGY_METER_URL")
	setString(&cfg.Energy.MeterToken, "ENERGY_METER_TOKEN")
	setString(&cfg.Energy.SolarURL, "SOLAR_API_URL")
	setString(&cfg.Energy.SolarToken, "SOLAR_API_TOKEN")
	setFloat(&cfg.Energy.CostPerKWh, "ENERGY_COST_PER_KWH")
	setBool(&cfg.Energy.UseMock, "USE_MOCK_ENERGY_DATA")

	setString(&cfg.Rental.APIURL, "RENTAL_API_URL")
	setString(&cfg.Rental.APIKey, "RENTAL_API_KEY")
	setBool(&cfg.Rental.UseMock, "USE_MOCK_RENTAL_DATA")

	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.Model, "LLM_MODEL")
}

// applyDefaults fills values the rest of the system assumes are non-zero.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Mining.Software == "" {
		cfg.Mining.Software = "nicehash"
	}
	if cfg.Energy.CostPerKWh <= 0 {
		cfg.Energy.CostPerKWh = 0.08
	}
	if cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = 1536
	}
	if cfg.LLM.TimeoutSeconds <= 0 {
		cfg.LLM.TimeoutSeconds = 60
	}
	if cfg.Queue.Concurrency <= 0 {
		cfg.Queue.Concurrency = 5
	}
	if cfg.Queue.MaxRetry <= 0 {
		cfg.Queue.MaxRetry = 3
	}
	if cfg.Queue.TaskTimeout <= 0 {
		cfg.Queue.TaskTimeout = 120
	}
	if cfg.Collector.Interval <= 0 {
		cfg.Collector.Interval = 300
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true") || v == "1"
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
