package game

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/plus3/spaceshooter/ecs"
)

// Game owns the registry and the ordered system list for one shooter session.
type Game struct {
	cfg       Config
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	logger    *log.Logger

	input   *ecs.Singleton[Controls]
	state   *ecs.Singleton[PhaseState]
	session *ecs.Singleton[Session]
	events  *ecs.Singleton[EventLog]
	scene   sceneQueries
}

type options struct {
	assets AssetLoader
	clock  ecs.Clock
	rand   *rand.Rand
	logger *log.Logger
	extra  []func(*ecs.ComponentRegistry)
}

// Option customises New.
type Option func(*options)

// WithAssets sets the loader used for sprite sheets. Defaults to NopAssets.
func WithAssets(loader AssetLoader) Option {
	return func(o *options) { o.assets = loader }
}

// WithClock sets the wall-clock source used by the weapon cooldown.
func WithClock(clock ecs.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithRand sets the random source for enemy spawn positions, overriding Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

// WithLogger sets the logger for diagnostics. Defaults to log.Default().
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithComponents registers additional component types, for tools that spawn their own
// entities into the game's storage.
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(o *options) { o.extra = append(o.extra, register) }
}

// New validates cfg, builds the world and enters the splash phase.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := options{
		clock:  ecs.SystemClock,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.assets == nil {
		o.assets = &NopAssets{}
	}
	if o.rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		o.rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	registry := newRegistry()
	for _, register := range o.extra {
		register(registry)
	}
	storage := ecs.NewStorage(registry)
	atlases := loadAtlases(o.assets)
	storage.AddSingleton(cfg)
	storage.AddSingleton(atlases)
	storage.AddSingleton(Controls{})
	storage.AddSingleton(EventLog{})
	storage.AddSingleton(Session{})
	storage.AddSingleton(PhaseState{Current: PhaseSplash})

	g := &Game{
		cfg:       cfg,
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		logger:    o.logger,
		input:     ecs.NewSingleton[Controls](storage),
		state:     ecs.NewSingleton[PhaseState](storage),
		session:   ecs.NewSingleton[Session](storage),
		events:    ecs.NewSingleton[EventLog](storage),
		scene:     newSceneQueries(storage),
	}
	g.scheduler.SetClock(o.clock)
	g.registerSystems(o.rand)

	cmds := ecs.NewCommands()
	enterPhase(storage, cmds, PhaseSplash, o.clock.Now(), cfg, atlases, g.session.Get())
	cmds.Flush(storage)

	return g, nil
}

func (g *Game) registerSystems(r *rand.Rand) {
	playing := InPhase(PhasePlaying)
	menus := InPhase(PhaseMenu, PhaseGameOver)

	g.scheduler.RegisterIf(&PlayerMotionSystem{}, playing)
	g.scheduler.RegisterIf(&ShootSystem{}, playing)
	g.scheduler.Register(&LaserSystem{})
	g.scheduler.RegisterIf(&EnemySpawnSystem{Rand: r}, playing)
	g.scheduler.RegisterIf(&EnemySeekSystem{}, playing)
	g.scheduler.RegisterIf(&LaserHitSystem{}, playing)
	g.scheduler.RegisterIf(&PlayerHitSystem{}, playing)
	g.scheduler.Register(&ExplosionSystem{})
	g.scheduler.Register(&AnimationSystem{})
	g.scheduler.RegisterIf(&ScoreLabelSystem{}, playing)
	g.scheduler.RegisterIf(&SplashSystem{Logger: g.logger}, InPhase(PhaseSplash))
	g.scheduler.RegisterIf(&ButtonSystem{}, menus)
	g.scheduler.RegisterIf(&MenuActionSystem{}, menus)
	g.scheduler.Register(&PhaseTransitionSystem{})
}

// Step advances the game by one tick of dt seconds with the given held input.
func (g *Game) Step(dt float64, in Input) {
	g.input.Get().update(in)
	g.scheduler.Once(dt)
}

// Scene snapshots what should be drawn now.
func (g *Game) Scene() Scene {
	return g.scene.build(g.Phase(), g.session.Get().LastScore)
}

// Events returns and clears everything emitted since the last call.
func (g *Game) Events() []Event {
	pending := g.events.Get()
	events := pending.Events
	pending.Events = nil
	return events
}

// Phase is the current game phase.
func (g *Game) Phase() Phase {
	return g.state.Get().Current
}

// Score is the running score while playing, otherwise the score of the last game.
func (g *Game) Score() int {
	if score, ok := g.scene.scores.First(); ok {
		return score.ScoreCounter.Kills
	}
	return g.session.Get().LastScore
}

// GamesPlayed counts entries into the playing phase.
func (g *Game) GamesPlayed() int {
	return g.session.Get().Games
}

// ExitRequested reports whether the player chose Quit.
func (g *Game) ExitRequested() bool {
	return g.session.Get().ExitRequested
}

// Config returns the configuration the game was built with.
func (g *Game) Config() Config {
	return g.cfg
}

// Storage exposes the registry for debugging tools.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the system list for debugging tools.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.scheduler
}
