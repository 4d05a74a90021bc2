// Package config loads runtime configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all client and session settings.
type Config struct {
	// TickTime is the seconds between automatic combat round commits.
	TickTime float64 `yaml:"tick_time"`
	// ServerURL is the base URL of the path validation authority.
	ServerURL string `yaml:"server_url"`

	EnemyRangedAttackEnabled bool    `yaml:"enemy_ranged_attack_enabled"`
	RangedMaxDistance        int     `yaml:"ranged_max_distance"`
	DiceSides                int     `yaml:"dice_sides"`
	RetreatFraction          float64 `yaml:"retreat_fraction"`
	ChaseDistance            int     `yaml:"chase_distance"`

	// MoveSpeed is mover speed in grid cells per second.
	MoveSpeed        float64 `yaml:"move_speed"`
	CombatMoveLimit  int     `yaml:"combat_move_limit"`
	ExploreMoveLimit int     `yaml:"explore_move_limit"`

	WinBannerSeconds float64 `yaml:"win_banner_seconds"`
	MessageSeconds   float64 `yaml:"message_seconds"`
	FlashSeconds     float64 `yaml:"flash_seconds"`

	Map MapConfig `yaml:"map"`
}

// MapConfig holds battlefield generation settings.
type MapConfig struct {
	Size int   `yaml:"size"`
	Seed int64 `yaml:"seed"` // 0 picks a time-based seed
	// Generator selects terrain generation: "random" or "noise".
	Generator string `yaml:"generator"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TickTime:          3.0,
		ServerURL:         "http://localhost:5001",
		RangedMaxDistance: 3,
		DiceSides:         6,
		RetreatFraction:   0.3,
		ChaseDistance:     10,
		MoveSpeed:         4.0,
		CombatMoveLimit:   6,
		ExploreMoveLimit:  99,
		WinBannerSeconds:  3.0,
		MessageSeconds:    2.0,
		FlashSeconds:      1.5,
		Map: MapConfig{
			Size:      10,
			Generator: "random",
		},
	}
}

// Load reads configuration from a YAML file. A missing file is not an
// error: the defaults apply. Zero values in the file fall back to the
// defaults as well, except for booleans, which the file states
// explicitly or not at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults if not provided
	def := Default()
	if cfg.TickTime == 0 {
		cfg.TickTime = def.TickTime
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = def.ServerURL
	}
	if cfg.RangedMaxDistance == 0 {
		cfg.RangedMaxDistance = def.RangedMaxDistance
	}
	if cfg.DiceSides == 0 {
		cfg.DiceSides = def.DiceSides
	}
	if cfg.RetreatFraction == 0 {
		cfg.RetreatFraction = def.RetreatFraction
	}
	if cfg.ChaseDistance == 0 {
		cfg.ChaseDistance = def.ChaseDistance
	}
	if cfg.MoveSpeed == 0 {
		cfg.MoveSpeed = def.MoveSpeed
	}
	if cfg.CombatMoveLimit == 0 {
		cfg.CombatMoveLimit = def.CombatMoveLimit
	}
	if cfg.ExploreMoveLimit == 0 {
		cfg.ExploreMoveLimit = def.ExploreMoveLimit
	}
	if cfg.WinBannerSeconds == 0 {
		cfg.WinBannerSeconds = def.WinBannerSeconds
	}
	if cfg.MessageSeconds == 0 {
		cfg.MessageSeconds = def.MessageSeconds
	}
	if cfg.FlashSeconds == 0 {
		cfg.FlashSeconds = def.FlashSeconds
	}
	if cfg.Map.Size == 0 {
		cfg.Map.Size = def.Map.Size
	}
	if cfg.Map.Generator == "" {
		cfg.Map.Generator = def.Map.Generator
	}

	return &cfg, nil
}
