// Package config 加载 paddleball 的 YAML 配置文件，并支持文件变更时热加载游戏参数。
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"paddleball/game"
)

// LogConfig 日志输出
type LogConfig struct {
	File   string `yaml:"file"`
	Level  string `yaml:"level"`
	Stderr bool   `yaml:"stderr"`
}

// Config 进程级配置；Game 段可热加载，其余字段仅启动时读取
type Config struct {
	Listen      string      `yaml:"listen"`
	WebDir      string      `yaml:"web_dir"`
	TickRate    int         `yaml:"tick_rate"`
	DefaultRoom string      `yaml:"default_room"`
	Log         LogConfig   `yaml:"log"`
	Game        game.Config `yaml:"game"`
}

// Default 默认配置
func Default() Config {
	return Config{
		Listen:      ":8080",
		WebDir:      "web",
		TickRate:    60,
		DefaultRoom: "room-1",
		Log: LogConfig{
			File:  "paddleball.log",
			Level: "debug",
		},
		Game: game.DefaultConfig(),
	}
}

// Load 读取配置文件，未出现的字段保留默认值；path 为空或文件不存在时返回默认配置
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate 校验进程配置与游戏配置
func (c Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("tick_rate must be in (0, 1000], got %d", c.TickRate)
	}
	if c.Listen == "" {
		return errors.New("listen must not be empty")
	}
	return c.Game.Validate()
}
