package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/ambience/internal/atmosphere"
	"github.com/iburimskiy/ambience/internal/config"
	"github.com/iburimskiy/ambience/internal/game"
	applog "github.com/iburimskiy/ambience/internal/log"
	"github.com/iburimskiy/ambience/internal/particle"
	"github.com/iburimskiy/ambience/internal/prefs"
	"github.com/iburimskiy/ambience/internal/soundscape"
	"github.com/iburimskiy/ambience/internal/theme"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	var (
		startup    = string(cfg.Startup.Policy)
		startTheme = string(cfg.Startup.Theme)
		pickAssets bool
	)
	flag.StringVar(&cfg.Audio.AssetDir, "assets", cfg.Audio.AssetDir, "Directory holding the sounds/ folder")
	flag.BoolVar(&cfg.Audio.SynthFallback, "synth", cfg.Audio.SynthFallback, "Play generated noise when a sound file is missing")
	flag.StringVar(&cfg.Prefs.Path, "prefs", cfg.Prefs.Path, "Preference database path ('memory' to skip persistence)")
	flag.StringVar(&startup, "startup", startup, "Startup theme policy: fixed or persisted")
	flag.StringVar(&startTheme, "theme", startTheme, "Theme shown at launch with -startup=fixed")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.IntVar(&cfg.Window.Width, "width", cfg.Window.Width, "Initial window width")
	flag.IntVar(&cfg.Window.Height, "height", cfg.Window.Height, "Initial window height")
	flag.BoolVar(&pickAssets, "pick-assets", false, "Ask for the asset directory when it does not exist")
	flag.Parse()

	cfg.Startup.Policy = config.StartupPolicy(startup)
	cfg.Startup.Theme = theme.ID(startTheme)
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		fatal(err)
	}

	if pickAssets {
		if dir, ok := pickAssetDir(cfg.Audio.AssetDir); ok {
			cfg.Audio.AssetDir = dir
		}
	}

	store, err := openStore(cfg.Prefs.Path)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := soundscape.NewBeepBackend(soundscape.BeepConfig{
		AssetDir:      cfg.Audio.AssetDir,
		SynthFallback: cfg.Audio.SynthFallback,
	})
	sound := soundscape.NewController(backend)
	atm := atmosphere.New(store, sound, particle.NewGenerator(nil), nil)
	defer atm.Close()

	atm.Init(ctx, atmosphere.Startup{
		UsePersisted: cfg.Startup.Policy == config.StartupPersisted,
		Theme:        cfg.Startup.Theme,
	}, cfg.Window.Width)

	applog.Info("starting",
		"theme", atm.Selected(),
		"assets", cfg.Audio.AssetDir,
		"prefs", cfg.Prefs.Path,
		"startup", cfg.Startup.Policy,
	)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Ambience - 1/2/3: themes, Tab: panel, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(ctx, atm, cfg.Window.Width, cfg.Window.Height)
	go func() {
		<-ctx.Done()
		applog.Debug("interrupt received")
		g.Quit()
	}()

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		applog.Error("game loop stopped", "error", err)
		showError(err)
		atm.Close()
		store.Close()
		os.Exit(1)
	}
}

func openStore(path string) (prefs.Store, error) {
	if path == "" {
		return prefs.NewMemoryStore(), nil
	}
	return prefs.OpenSQLite(path)
}

// pickAssetDir asks for an asset directory when dir does not exist.
func pickAssetDir(dir string) (string, bool) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, false
	}
	picked, err := zenity.SelectFile(
		zenity.Title("選擇音效資料夾"),
		zenity.Directory(),
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			applog.Warn("asset picker failed", "error", err)
		}
		return dir, false
	}
	applog.Info("asset directory selected", "dir", picked)
	return picked, true
}

func showError(err error) {
	if dErr := zenity.Error(err.Error(), zenity.Title("Ambience"), zenity.ErrorIcon); dErr != nil {
		applog.Warn("error dialog failed", "error", dErr)
	}
}

func fatal(err error) {
	applog.Error("startup failed", "error", err)
	showError(err)
	os.Exit(1)
}
