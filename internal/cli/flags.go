// Package cli holds the command-line options shared by the shooter frontends.
package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/plus3/spaceshooter/game"
)

// Options are the flags every frontend accepts.
type Options struct {
	ConfigPath string
	Seed       uint64
	Timing     string
	TitleMenu  bool
	Sound      bool
	Volume     float64
	FPS        int
	Assets     string
}

// Register binds the options to fs.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "YAML config file overlaid on the defaults")
	fs.Uint64Var(&o.Seed, "seed", 0, "enemy spawn seed (0 picks one at random, overrides the config)")
	fs.StringVar(&o.Timing, "timing", "", `timer mode, "tick" or "delta" (overrides the config)`)
	fs.BoolVar(&o.TitleMenu, "menu", false, "show the title menu after the splash screen")
	fs.BoolVar(&o.Sound, "sound", true, "play sound effects")
	fs.Float64Var(&o.Volume, "volume", 0.5, "sound effect volume, 1 is full scale")
	fs.IntVar(&o.FPS, "fps", 60, "target frames per second")
	fs.StringVar(&o.Assets, "assets", "assets", "directory holding spritesheets/ and branding/")
}

// Config loads the config file, if any, and applies flag overrides.
func (o *Options) Config() (game.Config, error) {
	cfg := game.DefaultConfig()
	if o.ConfigPath != "" {
		loaded, err := game.LoadConfig(o.ConfigPath)
		if err != nil {
			return game.Config{}, err
		}
		cfg = loaded
	}

	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	if o.Timing != "" {
		mode, err := game.ParseTimingMode(o.Timing)
		if err != nil {
			return game.Config{}, err
		}
		cfg.Timing = mode
	}
	if o.TitleMenu {
		cfg.TitleMenu = true
	}
	if o.FPS <= 0 {
		return game.Config{}, fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.Volume < 0 {
		return game.Config{}, fmt.Errorf("volume must not be negative, got %g", o.Volume)
	}

	return cfg, cfg.Validate()
}

// FrameTime is the fixed step length for the target frame rate.
func (o *Options) FrameTime() time.Duration {
	return time.Second / time.Duration(o.FPS)
}

// DeltaSeconds is FrameTime in seconds, the dt passed to Game.Step.
func (o *Options) DeltaSeconds() float64 {
	return 1 / float64(o.FPS)
}
