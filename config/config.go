// Package config loads the YAML settings shared by every command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"showdown-sim/random"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	AI     AIConfig     `yaml:"ai"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type DataConfig struct {
	Pokedex string `yaml:"pokedex"`
	Moves   string `yaml:"moves"`
}

type AIConfig struct {
	Playouts    int           `yaml:"playouts"`
	Workers     int           `yaml:"workers"` // 0 means one per CPU
	Policy      string        `yaml:"policy"`
	ChanceFloor float64       `yaml:"chance_floor"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxTurns    int           `yaml:"max_turns"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Address: ":42069"},
		Data:   DataConfig{Pokedex: "data/pokedex.json", Moves: "data/moves.json"},
		AI: AIConfig{
			Playouts:    2000,
			Policy:      random.Full.String(),
			ChanceFloor: 0.05,
			Timeout:     5 * time.Second,
			MaxTurns:    1000,
		},
		Store: StoreConfig{Path: "matches.db"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.AI.Playouts < 1:
		return fmt.Errorf("%w: ai.playouts must be positive, got %d", ErrInvalid, c.AI.Playouts)
	case c.AI.Workers < 0:
		return fmt.Errorf("%w: ai.workers must not be negative, got %d", ErrInvalid, c.AI.Workers)
	case c.AI.ChanceFloor < 0 || c.AI.ChanceFloor >= 1:
		return fmt.Errorf("%w: ai.chance_floor must be in [0,1), got %v", ErrInvalid, c.AI.ChanceFloor)
	case c.AI.Timeout < 0:
		return fmt.Errorf("%w: ai.timeout must not be negative, got %v", ErrInvalid, c.AI.Timeout)
	case c.AI.MaxTurns < 1:
		return fmt.Errorf("%w: ai.max_turns must be positive, got %d", ErrInvalid, c.AI.MaxTurns)
	case c.Data.Pokedex == "" || c.Data.Moves == "":
		return fmt.Errorf("%w: data.pokedex and data.moves are required", ErrInvalid)
	}
	if _, err := random.ParsePolicy(c.AI.Policy); err != nil {
		return fmt.Errorf("%w: ai.policy: %v", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// RandomPolicy returns the parsed ai.policy. Call after Validate.
func (a AIConfig) RandomPolicy() random.Policy {
	p, _ := random.ParsePolicy(a.Policy)
	return p
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return lvl, nil
}
