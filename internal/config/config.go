// Package config loads the application settings.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// FileName is the settings file looked up in the config directory.
const FileName = "spacetaxi.cfg.json"

// Settings are the resolved application settings.
type Settings struct {
	Window     WindowSettings     `mapstructure:"window"`
	Game       GameSettings       `mapstructure:"game"`
	Log        LogSettings        `mapstructure:"log"`
	Simulation SimulationSettings `mapstructure:"simulation"`
	Metrics    MetricsSettings    `mapstructure:"metrics"`
	Assets     map[string]string  `mapstructure:"assets"`
}

// WindowSettings holds the window geometry.
type WindowSettings struct {
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Title     string `mapstructure:"title"`
	Resizable bool   `mapstructure:"resizable"`
}

// GameSettings holds the session settings.
type GameSettings struct {
	TPS            int           `mapstructure:"tps"`
	Lives          int           `mapstructure:"lives"`
	Seed           int64         `mapstructure:"seed"` // 0 seeds from the clock
	AssetsDir      string        `mapstructure:"assetsDir"` // root of img/, snd/, voices/ and levels
	LevelsDir      string        `mapstructure:"levelsDir"`
	LevelPattern   string        `mapstructure:"levelPattern"`
	FatalCountdown time.Duration `mapstructure:"fatalCountdown"`
}

// LogSettings holds the logger settings.
type LogSettings struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// SimulationSettings points at the tuning file.
type SimulationSettings struct {
	File string `mapstructure:"file"`
}

// MetricsSettings toggles metric collection.
type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Space Taxi")
	v.SetDefault("window.resizable", false)

	v.SetDefault("game.tps", 90)
	v.SetDefault("game.lives", 5)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.assetsDir", ".")
	v.SetDefault("game.levelsDir", "levels")
	v.SetDefault("game.levelPattern", "level%d.toml")
	v.SetDefault("game.fatalCountdown", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("simulation.file", "simulation.json")

	v.SetDefault("metrics.enabled", false)

	v.SetDefault("assets", map[string]string{})
}

// Load reads configuration from the JSON file in configDir on top of the
// default values. A missing file is not an error.
func Load(configDir string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the game cannot start with.
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Game.TPS <= 0 {
		return fmt.Errorf("invalid tps %d", s.Game.TPS)
	}
	if s.Game.Lives <= 0 {
		return fmt.Errorf("invalid number of lives %d", s.Game.Lives)
	}
	if s.Game.FatalCountdown < 0 {
		return fmt.Errorf("invalid fatal countdown %s", s.Game.FatalCountdown)
	}
	return nil
}

// LevelsDir returns the directory holding the level files.
func (s *Settings) LevelsDir() string {
	return filepath.Join(s.Game.AssetsDir, s.Game.LevelsDir)
}

// LevelFile returns the path of level n.
func (s *Settings) LevelFile(n int) string {
	return filepath.Join(s.LevelsDir(), fmt.Sprintf(s.Game.LevelPattern, n))
}
