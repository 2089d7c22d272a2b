// Package simulation provides the tuning constants for the game simulation.
// Defaults reproduce the arcade feel; a JSON file can override any of them.
package simulation

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all simulation rules for the game
type Config struct {
	Taxi      TaxiConfig      `mapstructure:"taxi"`
	Astronaut AstronautConfig `mapstructure:"astronaut"`
	Level     LevelConfig     `mapstructure:"level"`
	HUD       HUDConfig       `mapstructure:"hud"`
}

// TaxiConfig defines propulsion, kinematics and landing rules. Velocities are
// in pixels per tick, accelerations in pixels per tick squared.
type TaxiConfig struct {
	RearThrust   float64 `mapstructure:"rearThrust"`   // acceleration gained per tick of rear thrust
	BottomThrust float64 `mapstructure:"bottomThrust"` // acceleration gained per tick of upward thrust
	TopThrust    float64 `mapstructure:"topThrust"`    // acceleration gained per tick of downward thrust

	MaxAccelerationX    float64 `mapstructure:"maxAccelerationX"`
	MaxAccelerationUp   float64 `mapstructure:"maxAccelerationUp"`
	MaxAccelerationDown float64 `mapstructure:"maxAccelerationDown"`

	Friction float64 `mapstructure:"friction"` // horizontal velocity multiplier per tick
	Gravity  float64 `mapstructure:"gravity"`  // added to vertical velocity per airborne tick

	SmoothLandingMax float64 `mapstructure:"smoothLandingMax"` // vertical speed ceiling for a smooth landing
	RoughLandingMax  float64 `mapstructure:"roughLandingMax"`  // above this the landing is refused

	SlideMinVelocity float64       `mapstructure:"slideMinVelocity"`
	SlidePower       float64       `mapstructure:"slidePower"`
	SlideFrames      int           `mapstructure:"slideFrames"`
	SlideFrameTime   time.Duration `mapstructure:"slideFrameTime"`

	RoughLandingTime  time.Duration `mapstructure:"roughLandingTime"` // gear compression pose duration
	CrashAcceleration float64       `mapstructure:"crashAcceleration"`
	LandingSnap       int           `mapstructure:"landingSnap"` // pixels the gear sinks into a pad

	FuelCapacity  float64 `mapstructure:"fuelCapacity"`
	RefuelPerTick float64 `mapstructure:"refuelPerTick"`

	ReactorVolume float64 `mapstructure:"reactorVolume"`
	DropOffsetX   int     `mapstructure:"dropOffsetX"` // astronaut drop/pick-up point relative to the taxi
}

// AstronautConfig defines astronaut animation and fare rules
type AstronautConfig struct {
	Velocity       float64       `mapstructure:"velocity"` // pixels per tick while jumping
	FareDecayEvery time.Duration `mapstructure:"fareDecayEvery"`
	FareDecayCents int           `mapstructure:"fareDecayCents"`
	WavingDelayMin time.Duration `mapstructure:"wavingDelayMin"`
	WavingDelayMax time.Duration `mapstructure:"wavingDelayMax"`
	FrameTime      time.Duration `mapstructure:"frameTime"`
	JumpFrameTime  time.Duration `mapstructure:"jumpFrameTime"`
	PadOffsetY     int           `mapstructure:"padOffsetY"` // astronauts stand this far above a pad
}

// LevelConfig defines orchestration rules
type LevelConfig struct {
	TimeBetweenAstronauts time.Duration `mapstructure:"timeBetweenAstronauts"`
	MusicFadeOut          time.Duration `mapstructure:"musicFadeOut"`
	DefaultFare           float64       `mapstructure:"defaultFare"`
}

// HUDConfig defines the pad announcement fade
type HUDConfig struct {
	AnnounceFadeIn  time.Duration `mapstructure:"announceFadeIn"`
	AnnounceHold    time.Duration `mapstructure:"announceHold"`
	AnnounceFadeOut time.Duration `mapstructure:"announceFadeOut"`
}

// DefaultConfig returns the classic arcade tuning
func DefaultConfig() *Config {
	return &Config{
		Taxi: TaxiConfig{
			RearThrust:          0.001,
			BottomThrust:        0.0005,
			TopThrust:           0.00025,
			MaxAccelerationX:    0.075,
			MaxAccelerationUp:   0.08,
			MaxAccelerationDown: 0.05,
			Friction:            0.9995,
			Gravity:             0.005,
			SmoothLandingMax:    0.50,
			RoughLandingMax:     0.60,
			SlideMinVelocity:    1,
			SlidePower:          4,
			SlideFrames:         3,
			SlideFrameTime:      50 * time.Millisecond,
			RoughLandingTime:    500 * time.Millisecond,
			CrashAcceleration:   0.10,
			LandingSnap:         4,
			FuelCapacity:        100,
			RefuelPerTick:       0.05,
			ReactorVolume:       0.25,
			DropOffsetX:         20,
		},
		Astronaut: AstronautConfig{
			Velocity:       0.2,
			FareDecayEvery: 50 * time.Millisecond,
			FareDecayCents: 1,
			WavingDelayMin: 10 * time.Second,
			WavingDelayMax: 30 * time.Second,
			FrameTime:      100 * time.Millisecond,
			JumpFrameTime:  150 * time.Millisecond,
			PadOffsetY:     24,
		},
		Level: LevelConfig{
			TimeBetweenAstronauts: 5 * time.Second,
			MusicFadeOut:          500 * time.Millisecond,
			DefaultFare:           20.00,
		},
		HUD: HUDConfig{
			AnnounceFadeIn:  260 * time.Millisecond,
			AnnounceHold:    1750 * time.Millisecond,
			AnnounceFadeOut: 510 * time.Millisecond,
		},
	}
}

// LoadConfig loads simulation config from a JSON file on top of the defaults.
// Durations are written as strings ("50ms").
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	t := c.Taxi
	if t.SmoothLandingMax < 0 || t.RoughLandingMax < t.SmoothLandingMax {
		errs = append(errs, fmt.Errorf("landing thresholds must satisfy 0 <= smooth (%v) <= rough (%v)",
			t.SmoothLandingMax, t.RoughLandingMax))
	}
	if t.FuelCapacity <= 0 {
		errs = append(errs, fmt.Errorf("fuel capacity must be positive, got %v", t.FuelCapacity))
	}
	if t.SlideFrames <= 0 || t.SlideFrameTime <= 0 {
		errs = append(errs, errors.New("slide frames and slide frame time must be positive"))
	}
	if t.Friction <= 0 || t.Friction > 1 {
		errs = append(errs, fmt.Errorf("friction must be in (0, 1], got %v", t.Friction))
	}

	a := c.Astronaut
	if a.Velocity <= 0 {
		errs = append(errs, fmt.Errorf("astronaut velocity must be positive, got %v", a.Velocity))
	}
	if a.FrameTime <= 0 || a.JumpFrameTime <= 0 {
		errs = append(errs, errors.New("astronaut frame times must be positive"))
	}
	if a.FareDecayEvery <= 0 || a.FareDecayCents < 0 {
		errs = append(errs, errors.New("fare decay must have a positive period and a non-negative amount"))
	}
	if a.WavingDelayMin < 0 || a.WavingDelayMax < a.WavingDelayMin {
		errs = append(errs, errors.New("waving delays must satisfy 0 <= min <= max"))
	}

	if c.Level.TimeBetweenAstronauts < 0 || c.Level.DefaultFare < 0 {
		errs = append(errs, errors.New("level timings and fares must not be negative"))
	}
	return errors.Join(errs...)
}
