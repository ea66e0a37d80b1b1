package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Estimator EstimatorConfig `yaml:"estimator" mapstructure:"estimator"`
	Sessions  SessionConfig   `yaml:"sessions" mapstructure:"sessions"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	CORSOrigins     []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimitRPS    float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst  int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
}

// StoreConfig configures the estimate history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
	// RetryAttempts bounds attempts on transient database errors. 1 disables retries.
	RetryAttempts int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
}

// EstimatorConfig configures result computation.
type EstimatorConfig struct {
	// ResultDelayMS is the simulated processing delay before results show.
	ResultDelayMS int `yaml:"result_delay_ms" mapstructure:"result_delay_ms"`
	// ProviderCount is how many nearby providers are attached to a result.
	ProviderCount int `yaml:"provider_count" mapstructure:"provider_count"`
	// ProviderMaxOffset bounds the random shift of provider success ratios.
	ProviderMaxOffset float64 `yaml:"provider_max_offset" mapstructure:"provider_max_offset"`
	// Seed fixes provider shuffling when non-zero.
	Seed uint64 `yaml:"seed" mapstructure:"seed"`
}

// ResultDelay returns the simulated delay as a duration.
func (c EstimatorConfig) ResultDelay() time.Duration {
	return time.Duration(c.ResultDelayMS) * time.Millisecond
}

// SessionConfig configures in-memory form sessions.
type SessionConfig struct {
	TTLMinutes   int `yaml:"ttl_minutes" mapstructure:"ttl_minutes"`
	SweepSeconds int `yaml:"sweep_secs" mapstructure:"sweep_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ESTIMATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "estimates.db")
	v.SetDefault("store.retry_attempts", 3)
	v.SetDefault("estimator.result_delay_ms", 1500)
	v.SetDefault("estimator.provider_count", 5)
	v.SetDefault("estimator.provider_max_offset", 2.0)
	v.SetDefault("estimator.seed", 0)
	v.SetDefault("sessions.ttl_minutes", 30)
	v.SetDefault("sessions.sweep_secs", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
