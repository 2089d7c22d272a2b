package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/audio"
	"chosenoffset.com/spacetaxi/internal/audio/ebitenaudio"
	"chosenoffset.com/spacetaxi/internal/config"
	"chosenoffset.com/spacetaxi/internal/core/clock"
	"chosenoffset.com/spacetaxi/internal/game"
	"chosenoffset.com/spacetaxi/internal/logging"
	ebitenrender "chosenoffset.com/spacetaxi/internal/render/ebiten"
	"chosenoffset.com/spacetaxi/internal/simulation"
	"chosenoffset.com/spacetaxi/internal/telemetry"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	flag.Parse()

	settings, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, settings.Log.Level, settings.Log.Console)

	if err := run(settings, *configDir, log); err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}
}

func run(settings *config.Settings, configDir string, log zerolog.Logger) error {
	simPath := settings.Simulation.File
	if !filepath.IsAbs(simPath) {
		simPath = filepath.Join(configDir, simPath)
	}
	sim, err := simulation.LoadConfig(simPath)
	if err != nil {
		return err
	}

	metrics := telemetry.Nop()
	if settings.Metrics.Enabled {
		if metrics, err = telemetry.New(nil); err != nil {
			return fmt.Errorf("failed to create metrics: %w", err)
		}
	}

	seed := settings.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		return err
	}
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	catalog := assets.DefaultCatalog()
	catalog.Merge(settings.Assets)
	provider := assets.NewProvider(catalog, loader).WithRoot(settings.Game.AssetsDir)

	player := ebitenaudio.New(eaudio.NewContext(ebitenaudio.SampleRate), catalog.Rooted(settings.Game.AssetsDir), log)

	// Sounds are decoded before the splash screen starts its theme.
	preloadErr := player.Preload(soundCues(catalog)...)

	manager := game.NewManager(settings, sim, game.Deps{
		Renderer: renderer,
		Input:    inputMgr,
		Assets:   provider,
		Audio:    player,
		Music:    player,
		Clock:    clock.Real{},
		Metrics:  metrics,
		Log:      log,
		Rand:     rand.New(rand.NewSource(seed)),
	})
	if preloadErr != nil {
		manager.Fail(preloadErr)
	}

	engine.SetWindowSize(settings.Window.Width, settings.Window.Height)
	engine.SetWindowTitle(settings.Window.Title)
	engine.SetWindowResizable(settings.Window.Resizable)
	engine.SetTPS(settings.Game.TPS)

	log.Info().
		Int("tps", settings.Game.TPS).
		Int("lives", settings.Game.Lives).
		Str("assets", settings.Game.AssetsDir).
		Int64("seed", seed).
		Msg("starting game")
	return engine.RunGame(manager)
}

// soundCues lists the catalogue entries that are sounds.
func soundCues(catalog assets.Catalog) []audio.Cue {
	var cues []audio.Cue
	for id := range catalog {
		if strings.HasPrefix(string(id), "snd_") || strings.HasPrefix(string(id), "voice_") {
			cues = append(cues, id)
		}
	}
	return cues
}
