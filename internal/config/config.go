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
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Databank DatabankConfig `yaml:"databank" mapstructure:"databank"`
	History  HistoryConfig  `yaml:"history" mapstructure:"history"`
	Engine   EngineConfig   `yaml:"engine" mapstructure:"engine"`
	Backend  BackendConfig  `yaml:"backend" mapstructure:"backend"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the local HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DatabankConfig locates the databank YAML file.
type DatabankConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// HistoryConfig configures the answer-usage history store.
type HistoryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
	Keep int    `yaml:"keep" mapstructure:"keep"`
}

// EngineConfig tunes the extraction and matching engine.
type EngineConfig struct {
	VocabularyPath string  `yaml:"vocabulary_path" mapstructure:"vocabulary_path"`
	Threshold      float64 `yaml:"threshold" mapstructure:"threshold"`
}

// BackendConfig points at an optional remote answering backend. When URL is
// set, the CLI tries the backend first and falls back to the local engine.
type BackendConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from jobradar.yaml (optional), JOBRADAR_*
// environment variables and built-in defaults, in that precedence order.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("jobradar")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("JOBRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. The server port matches the original backend the extension
	// talks to.
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("databank.path", "qa_databank.yaml")
	v.SetDefault("history.path", "answer_history.db")
	v.SetDefault("history.keep", 1000)
	v.SetDefault("engine.threshold", 0.3)
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
