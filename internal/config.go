package internal

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/tuannm99/novabuf/pkg/logger"
)

type NovaBufConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		Workdir string `mapstructure:"workdir"`
	} `mapstructure:"storage"`

	BufferPool struct {
		Frames int `mapstructure:"frames"`
	} `mapstructure:"bufferpool"`

	Log logger.Config `mapstructure:"log"`

	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Addr    string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novabuf")
	v.SetDefault("storage.workdir", "./data")
	v.SetDefault("bufferpool.frames", 128)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "stderr")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9464")
}

func LoadConfig(path string) (*NovaBufConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg NovaBufConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.BufferPool.Frames <= 0 {
		return nil, fmt.Errorf("bufferpool.frames must be positive, got %d", cfg.BufferPool.Frames)
	}

	return &cfg, nil
}
