package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the application-level configuration: everything about how the
// tool runs, as opposed to what it simulates (domain.Parameters).
type Config struct {
	Simulation SimConfig     `yaml:"simulation" mapstructure:"simulation"`
	Journal    JournalConfig `yaml:"journal" mapstructure:"journal"`
	Log        LogConfig     `yaml:"log" mapstructure:"log"`
}

// SimConfig provides defaults for flags the user did not set.
type SimConfig struct {
	Trials         int     `yaml:"trials" mapstructure:"trials"`
	Parallelism    int     `yaml:"parallelism" mapstructure:"parallelism"`
	MaxFailureRate float64 `yaml:"max_failure_rate" mapstructure:"max_failure_rate"`
}

// JournalConfig configures the run-history database.
type JournalConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads config.yaml from the working directory (optional) with RETMC_*
// environment overrides and sane defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RETMC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("simulation.trials", 1000)
	v.SetDefault("simulation.parallelism", 10)
	v.SetDefault("simulation.max_failure_rate", 0.01)
	v.SetDefault("journal.path", "retirement-mc.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read config file")
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
