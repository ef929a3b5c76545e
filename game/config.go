package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TimingMode selects how frame-counted timers advance.
type TimingMode string

const (
	// TimingTick advances spawn, explosion and animation timers by one unit per Step,
	// whatever the frame delta.
	TimingTick TimingMode = "tick"
	// TimingDelta advances them by dt * TickRate units per Step.
	TimingDelta TimingMode = "delta"
)

// ParseTimingMode accepts "tick" or "delta".
func ParseTimingMode(s string) (TimingMode, error) {
	switch mode := TimingMode(s); mode {
	case TimingTick, TimingDelta:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown timing mode %q (want %q or %q)", s, TimingTick, TimingDelta)
	}
}

// Screen size of the UI layer, in pixels. Labels and buttons are placed in this space
// with the origin at the top left.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Config holds every gameplay tunable. World distances are in pixels with the origin at the
// arena centre and y pointing up.
type Config struct {
	ArenaWidth  float64 `yaml:"arena_width"`
	ArenaHeight float64 `yaml:"arena_height"`

	PlayerSpeed     float64 `yaml:"player_speed"`
	LaserSpeed      float64 `yaml:"laser_speed"`
	LaserOffset     float64 `yaml:"laser_offset"`
	EnemySpeed      float64 `yaml:"enemy_speed"`
	EnemySpawnY     float64 `yaml:"enemy_spawn_y"`
	EnemySpawnRange int     `yaml:"enemy_spawn_range"`
	EnemyClampY     float64 `yaml:"enemy_clamp_y"`

	SpawnPeriod       float64       `yaml:"spawn_period"`
	ShotCooldown      time.Duration `yaml:"shot_cooldown"`
	ExplosionLifetime float64       `yaml:"explosion_lifetime"`
	SplashDuration    time.Duration `yaml:"splash_duration"`

	HitboxHalfWidth  float64 `yaml:"hitbox_half_width"`
	HitboxHalfHeight float64 `yaml:"hitbox_half_height"`

	TickRate float64    `yaml:"tick_rate"`
	Timing   TimingMode `yaml:"timing"`

	TitleMenu         bool `yaml:"title_menu"`
	EnemyVerticalFlee bool `yaml:"enemy_vertical_flee"`

	// Seed fixes the enemy spawn sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the arcade tuning.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:  1200,
		ArenaHeight: 640,

		PlayerSpeed:     500,
		LaserSpeed:      500,
		LaserOffset:     6,
		EnemySpeed:      200,
		EnemySpawnY:     640,
		EnemySpawnRange: 1200,
		EnemyClampY:     640,

		SpawnPeriod:       30,
		ShotCooldown:      250 * time.Millisecond,
		ExplosionLifetime: 30,
		SplashDuration:    time.Second,

		HitboxHalfWidth:  45.5,
		HitboxHalfHeight: 15.5,

		TickRate: 60,
		Timing:   TimingTick,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena_width", c.ArenaWidth)
	positive("arena_height", c.ArenaHeight)
	positive("player_speed", c.PlayerSpeed)
	positive("laser_speed", c.LaserSpeed)
	positive("enemy_speed", c.EnemySpeed)
	positive("enemy_clamp_y", c.EnemyClampY)
	positive("spawn_period", c.SpawnPeriod)
	positive("explosion_lifetime", c.ExplosionLifetime)
	positive("hitbox_half_width", c.HitboxHalfWidth)
	positive("hitbox_half_height", c.HitboxHalfHeight)
	positive("tick_rate", c.TickRate)

	if c.EnemySpawnRange <= 0 {
		errs = append(errs, fmt.Errorf("enemy_spawn_range must be positive, got %d", c.EnemySpawnRange))
	}
	if c.ShotCooldown < 0 {
		errs = append(errs, fmt.Errorf("shot_cooldown must not be negative, got %s", c.ShotCooldown))
	}
	if c.SplashDuration < 0 {
		errs = append(errs, fmt.Errorf("splash_duration must not be negative, got %s", c.SplashDuration))
	}
	if _, err := ParseTimingMode(string(c.Timing)); err != nil {
		errs = append(errs, fmt.Errorf("timing: %w", err))
	}

	return errors.Join(errs...)
}

// halfExtents is the player clamp box.
func (c Config) halfExtents() (float64, float64) {
	return c.ArenaWidth / 2, c.ArenaHeight / 2
}
