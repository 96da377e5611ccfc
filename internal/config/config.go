package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type PathsConfig struct {
	TokenizerPath string `mapstructure:"tokenizer_path"`
}

type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	MaxTextBytes    int           `mapstructure:"max_text_bytes"`
	Workers         int           `mapstructure:"workers"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			TokenizerPath: "tokenizer.json",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    1 << 20,
			Workers:         4,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-tokenizer-path", defaults.Paths.TokenizerPath, "Path to tokenizer.json")
	fs.String("tokenizer", defaults.Paths.TokenizerPath, "Path to tokenizer.json (alias for --paths-tokenizer-path)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("server-workers", defaults.Server.Workers, "Max concurrent encode/decode requests")
	fs.Duration("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout")
	fs.String("logging-level", defaults.Logging.Level, "Log level (debug, info, warn, error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("BBPE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("paths.tokenizer_path", "BBPE_TOKENIZER", "TOKENIZER_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind tokenizer env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("bbpe")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.tokenizer_path", c.Paths.TokenizerPath)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("logging.level", c.Logging.Level)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.tokenizer_path", "paths-tokenizer-path")
	v.RegisterAlias("paths.tokenizer_path", "tokenizer")
	v.RegisterAlias("server.listen_addr", "server-listen-addr")
	v.RegisterAlias("server.max_text_bytes", "server-max-text-bytes")
	v.RegisterAlias("server.workers", "server-workers")
	v.RegisterAlias("server.shutdown_timeout", "server-shutdown-timeout")
	v.RegisterAlias("logging.level", "logging-level")
}
