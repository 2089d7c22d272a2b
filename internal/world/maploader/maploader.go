// Package maploader reads level files: the backdrop, the scenery placements
// and the schedule of passengers.
package maploader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/world/scenery"
)

// ErrInvalidLevel is matched by every InvalidLevelError.
var ErrInvalidLevel = errors.New("invalid level")

// InvalidLevelError reports a level file that parsed but makes no sense,
// or did not parse at all.
type InvalidLevelError struct {
	Path   string
	Reason string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid level %s: %s", e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidLevel) true.
func (e *InvalidLevelError) Is(target error) bool { return target == ErrInvalidLevel }

func invalid(path, format string, args ...any) error {
	return &InvalidLevelError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Placement puts an image at a screen position.
type Placement struct {
	Image string `mapstructure:"image"`
	X     int    `mapstructure:"x"`
	Y     int    `mapstructure:"y"`
}

// PadRecord places a numbered landing pad. StartX and EndX are optional
// astronaut anchors; both zero means derive them from the pad picture.
type PadRecord struct {
	ID     int    `mapstructure:"id"`
	Image  string `mapstructure:"image"`
	X      int    `mapstructure:"x"`
	Y      int    `mapstructure:"y"`
	StartX int    `mapstructure:"startX"`
	EndX   int    `mapstructure:"endX"`
}

// Spec converts the record for the scenery package.
func (r PadRecord) Spec() scenery.PadSpec {
	s := scenery.PadSpec{ID: scenery.PadID(r.ID)}
	s.Pos.X, s.Pos.Y = r.X, r.Y
	if r.StartX != 0 || r.EndX != 0 {
		s.StartX, s.EndX, s.HasAnchors = r.StartX, r.EndX, true
	}
	return s
}

// Trip is one scheduled passenger.
type Trip struct {
	Source scenery.PadID
	Target scenery.PadID // scenery.Up leaves through the gate
	Fare   int           // cents
}

// tripRecord is a trip as written in the file. Target is a pad number or "up";
// a zero fare takes the level fare.
type tripRecord struct {
	Source int     `mapstructure:"source"`
	Target string  `mapstructure:"target"`
	Fare   float64 `mapstructure:"fare"`
}

type levelSection struct {
	Surface string  `mapstructure:"surface"`
	Music   string  `mapstructure:"music"`
	Fare    float64 `mapstructure:"fare"`
}

type levelFile struct {
	Level      levelSection `mapstructure:"level"`
	Gate       Placement    `mapstructure:"gate"`
	Obstacles  []Placement  `mapstructure:"obstacles"`
	Pumps      []Placement  `mapstructure:"pumps"`
	Pads       []PadRecord  `mapstructure:"pads"`
	Astronauts []tripRecord `mapstructure:"astronauts"`
}

// Level is a loaded level description.
type Level struct {
	Path      string
	Surface   string
	Music     string
	Gate      Placement
	Obstacles []Placement
	Pumps     []Placement
	Pads      []PadRecord
	Trips     []Trip
}

// DefaultSchedule is the classic six-trip run, ending with a ride out
// through the gate.
func DefaultSchedule(fare int) []Trip {
	return []Trip{
		{Source: 4, Target: 1, Fare: fare},
		{Source: 3, Target: 5, Fare: fare},
		{Source: 1, Target: 2, Fare: fare},
		{Source: 5, Target: 3, Fare: fare},
		{Source: 2, Target: 4, Fare: fare},
		{Source: 1, Target: scenery.Up, Fare: fare},
	}
}

// Cents converts a dollar amount to whole cents.
func Cents(dollars float64) int {
	return int(dollars*100 + 0.5)
}

// Load reads a TOML level file. defaultFare (dollars) applies when neither
// the level nor a trip names one.
func Load(path string, defaultFare float64) (*Level, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, assets.Missing(path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("level.fare", defaultFare)
	if err := v.ReadInConfig(); err != nil {
		return nil, invalid(path, "failed to parse: %v", err)
	}

	var f levelFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, invalid(path, "failed to decode: %v", err)
	}

	lvl := &Level{
		Path:      path,
		Surface:   f.Level.Surface,
		Music:     f.Level.Music,
		Gate:      f.Gate,
		Obstacles: f.Obstacles,
		Pumps:     f.Pumps,
		Pads:      f.Pads,
	}
	// Pads written without an id are numbered in file order.
	for i := range lvl.Pads {
		if lvl.Pads[i].ID == 0 {
			lvl.Pads[i].ID = i + 1
		}
	}

	fare := Cents(f.Level.Fare)
	if len(f.Astronauts) == 0 {
		lvl.Trips = DefaultSchedule(fare)
	}
	for i, r := range f.Astronauts {
		target, err := parseTarget(r.Target)
		if err != nil {
			return nil, invalid(path, "astronaut %d: %v", i+1, err)
		}
		t := Trip{Source: scenery.PadID(r.Source), Target: target, Fare: fare}
		if r.Fare != 0 {
			t.Fare = Cents(r.Fare)
		}
		lvl.Trips = append(lvl.Trips, t)
	}

	if err := validate(lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

func parseTarget(s string) (scenery.PadID, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "up") {
		return scenery.Up, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("bad target %q", s)
	}
	return scenery.PadID(n), nil
}

func validate(l *Level) error {
	if l.Surface == "" {
		return invalid(l.Path, "level surface is required")
	}
	if l.Gate.Image == "" {
		return invalid(l.Path, "gate image is required")
	}
	if len(l.Pads) == 0 {
		return invalid(l.Path, "at least one pad is required")
	}

	ids := make(map[scenery.PadID]bool, len(l.Pads))
	for _, p := range l.Pads {
		if p.ID < 0 {
			return invalid(l.Path, "pad id %d is negative", p.ID)
		}
		if ids[scenery.PadID(p.ID)] {
			return invalid(l.Path, "duplicate pad %d", p.ID)
		}
		ids[scenery.PadID(p.ID)] = true
		if p.Image == "" {
			return invalid(l.Path, "pad %d has no image", p.ID)
		}
		if (p.StartX != 0 || p.EndX != 0) && p.StartX >= p.EndX {
			return invalid(l.Path, "pad %d anchors %d..%d are inverted", p.ID, p.StartX, p.EndX)
		}
	}
	for i, o := range l.Obstacles {
		if o.Image == "" {
			return invalid(l.Path, "obstacle %d has no image", i+1)
		}
	}
	for i, o := range l.Pumps {
		if o.Image == "" {
			return invalid(l.Path, "pump %d has no image", i+1)
		}
	}

	for i, t := range l.Trips {
		if !ids[t.Source] {
			return invalid(l.Path, "astronaut %d starts on unknown pad %d", i+1, t.Source)
		}
		if t.Target != scenery.Up && !ids[t.Target] {
			return invalid(l.Path, "astronaut %d goes to unknown pad %d", i+1, t.Target)
		}
		if t.Target == t.Source {
			return invalid(l.Path, "astronaut %d goes nowhere", i+1)
		}
		if t.Fare < 0 {
			return invalid(l.Path, "astronaut %d has a negative fare", i+1)
		}
		// Only the last passenger leaves through the gate; that delivery ends the level.
		last := i == len(l.Trips)-1
		if last && t.Target != scenery.Up {
			return invalid(l.Path, "astronaut %d is the last and must go up", i+1)
		}
		if !last && t.Target == scenery.Up {
			return invalid(l.Path, "astronaut %d goes up before the schedule ends", i+1)
		}
	}
	return nil
}
