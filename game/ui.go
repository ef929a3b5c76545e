package game

import (
	"log"

	"github.com/plus3/spaceshooter/ecs"
)

// Color is linear RGB in [0, 1].
type Color struct {
	R, G, B float32
}

var (
	ColorButtonNormal         = Color{0.15, 0.15, 0.15}
	ColorButtonHovered        = Color{0.25, 0.25, 0.25}
	ColorButtonHoveredPressed = Color{0.25, 0.65, 0.25}
	ColorButtonPressed        = Color{0.35, 0.75, 0.35}
	ColorMenuPanel            = Color{0.86, 0.08, 0.24}
	ColorText                 = Color{1, 1, 1}
)

// Interaction is the pointer state over a button.
type Interaction uint8

const (
	InteractionNone Interaction = iota
	InteractionHovered
	InteractionPressed
)

// MenuAction is what a button does when activated.
type MenuAction uint8

const (
	ActionPlay MenuAction = iota
	ActionQuit
)

// Button is a clickable UI rectangle in screen coordinates.
type Button struct {
	Text        string
	Action      MenuAction
	X, Y, W, H  float64
	Interaction Interaction
	Selected    bool
	Color       Color
	// Clicked is set for the tick in which Interaction became InteractionPressed.
	Clicked bool
}

// Contains reports whether the screen point is inside the button.
func (b *Button) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

func buttonColor(interaction Interaction, selected bool) Color {
	switch {
	case interaction == InteractionPressed, interaction == InteractionNone && selected:
		return ColorButtonPressed
	case interaction == InteractionHovered && selected:
		return ColorButtonHoveredPressed
	case interaction == InteractionHovered:
		return ColorButtonHovered
	default:
		return ColorButtonNormal
	}
}

const (
	menuPanelW    = 400
	menuPanelH    = 420
	menuButtonW   = 250
	menuButtonH   = 65
	menuButtonGap = 20
)

func spawnMenu(cmds *ecs.Commands, phase Phase, title, subtitle string) {
	panelX := float64(ScreenWidth-menuPanelW) / 2
	panelY := float64(ScreenHeight-menuPanelH) / 2

	cmds.Spawn(Panel{X: panelX, Y: panelY, W: menuPanelW, H: menuPanelH, Color: ColorMenuPanel}, Screen{Phase: phase})
	cmds.Spawn(Label{Text: title, X: panelX + 20, Y: panelY + 30, Size: 80}, Screen{Phase: phase})
	if subtitle != "" {
		cmds.Spawn(Label{Text: subtitle, X: panelX + 130, Y: panelY + 130, Size: 30}, Screen{Phase: phase})
	}

	buttonX := float64(ScreenWidth-menuButtonW) / 2
	buttonY := panelY + 190
	for i, entry := range []struct {
		text   string
		action MenuAction
	}{
		{"New Game", ActionPlay},
		{"Quit", ActionQuit},
	} {
		selected := i == 0
		cmds.Spawn(
			Button{
				Text:     entry.text,
				Action:   entry.action,
				X:        buttonX,
				Y:        buttonY + float64(i)*(menuButtonH+menuButtonGap),
				W:        menuButtonW,
				H:        menuButtonH,
				Selected: selected,
				Color:    buttonColor(InteractionNone, selected),
			},
			Screen{Phase: phase},
		)
	}
}

// ButtonSystem derives each button's interaction from the pointer and moves the keyboard
// selection with Up/Down.
type ButtonSystem struct {
	Input   ecs.Singleton[Controls]
	Buttons ecs.Query[struct{ *Button }]
}

func (s *ButtonSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Input.Get()
	if controls == nil {
		return
	}
	in := controls.Held

	step := 0
	if in.Down && !controls.Prev.Down {
		step = 1
	}
	if in.Up && !controls.Prev.Up {
		step = -1
	}

	var buttons []*Button
	for item := range s.Buttons.Iter() {
		buttons = append(buttons, item.Button)
	}

	if step != 0 && len(buttons) > 0 {
		current := 0
		for i, b := range buttons {
			if b.Selected {
				current = i
			}
			b.Selected = false
		}
		next := (current + step + len(buttons)) % len(buttons)
		buttons[next].Selected = true
	}

	for _, b := range buttons {
		interaction := InteractionNone
		if b.Contains(in.Pointer.X, in.Pointer.Y) {
			interaction = InteractionHovered
			if in.Pointer.Down {
				interaction = InteractionPressed
			}
		}

		b.Clicked = interaction == InteractionPressed && b.Interaction != InteractionPressed
		b.Interaction = interaction
		b.Color = buttonColor(interaction, b.Selected)
	}
}

// MenuActionSystem runs the action of a clicked button, or of the selected button on Confirm.
type MenuActionSystem struct {
	Input   ecs.Singleton[Controls]
	State   ecs.Singleton[PhaseState]
	Session ecs.Singleton[Session]
	Events  ecs.Singleton[EventLog]
	Buttons ecs.Query[struct{ *Button }]
}

func (s *MenuActionSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Input.Get()
	if controls == nil {
		return
	}
	confirm := controls.Held.Confirm && !controls.Prev.Confirm

	for item := range s.Buttons.Iter() {
		b := item.Button
		if b.Clicked || (confirm && b.Selected) {
			s.activate(b.Action)
			return
		}
	}
}

func (s *MenuActionSystem) activate(action MenuAction) {
	switch action {
	case ActionPlay:
		s.State.Get().Request(PhasePlaying)
	case ActionQuit:
		session := s.Session.Get()
		if !session.ExitRequested {
			session.ExitRequested = true
			s.Events.Get().emit(Event{Kind: EventExit})
		}
	}
}

// SplashSystem advances the splash screen after its timer runs out.
type SplashSystem struct {
	Timer  ecs.Singleton[SplashTimer]
	State  ecs.Singleton[PhaseState]
	Config ecs.Singleton[Config]
	Logger *log.Logger

	warned bool
}

func (s *SplashSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	if timer == nil {
		if !s.warned {
			s.Logger.Println("splash timer not found")
			s.warned = true
		}
		return
	}

	timer.Remaining -= secondsToDuration(frame.DeltaTime)
	if timer.Remaining > 0 {
		return
	}

	if s.Config.Get().TitleMenu {
		s.State.Get().Request(PhaseMenu)
	} else {
		s.State.Get().Request(PhasePlaying)
	}
}

// ScoreLabelSystem keeps the HUD text in step with the score.
type ScoreLabelSystem struct {
	Scores ecs.Query[struct{ *ScoreCounter }]
	Labels ecs.Query[struct {
		*Label
		*ScoreLabel
	}]
}

func (s *ScoreLabelSystem) Execute(frame *ecs.UpdateFrame) {
	score, ok := s.Scores.First()
	if !ok {
		return
	}
	for item := range s.Labels.Iter() {
		item.Label.Text = scoreText(score.ScoreCounter.Kills)
	}
}
