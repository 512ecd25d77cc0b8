package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Models    ModelsConfig    `mapstructure:"models"`
	Output    OutputConfig    `mapstructure:"output"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Log       LogConfig       `mapstructure:"log"`
}

type ModelsConfig struct {
	SearchPaths []string `mapstructure:"search_paths"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	FileMode string `mapstructure:"file_mode"`
}

type GeneratorConfig struct {
	Strict         bool   `mapstructure:"strict"`
	Locale         string `mapstructure:"locale"`
	Workers        int    `mapstructure:"workers"`
	LAN9252Default bool   `mapstructure:"lan9252_default"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("models.search_paths", []string{"."})
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.file_mode", "0644")

	// Generator Defaults
	v.SetDefault("generator.strict", false)
	v.SetDefault("generator.locale", "en-US")
	v.SetDefault("generator.workers", 4)
	v.SetDefault("generator.lan9252_default", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads the YAML config at path. An empty path yields the defaults
// plus environment overrides (ESIGEN_ prefix, e.g. ESIGEN_OUTPUT_DIR).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ESIGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := config.Output.Perm(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Perm parses FileMode as an octal permission string such as "0644".
func (o *OutputConfig) Perm() (os.FileMode, error) {
	if o.FileMode == "" {
		return 0644, nil
	}
	mode, err := strconv.ParseUint(o.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid output.file_mode %q: %w", o.FileMode, err)
	}
	return os.FileMode(mode).Perm(), nil
}

// WorkerCount never returns less than one.
func (g *GeneratorConfig) WorkerCount() int {
	if g.Workers < 1 {
		return 1
	}
	return g.Workers
}

// NewLogger builds the zap logger described by the log section.
func (l *LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}

	var zc zap.Config
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
