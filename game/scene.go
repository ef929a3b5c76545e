package game

import (
	"github.com/plus3/spaceshooter/ecs"
)

// SpriteInstance is one world sprite to draw.
type SpriteInstance struct {
	Kind  SpriteKind
	Atlas AtlasHandle
	Frame int
	X, Y  float64
	Scale float64
}

// LabelInstance is one UI text to draw.
type LabelInstance struct {
	Text string
	X, Y float64
	Size float64
}

// ButtonInstance is one UI button to draw.
type ButtonInstance struct {
	Text        string
	X, Y, W, H  float64
	Color       Color
	Interaction Interaction
	Selected    bool
}

// ImageInstance is one UI picture to draw.
type ImageInstance struct {
	Atlas      AtlasHandle
	X, Y, W, H float64
}

// PanelInstance is one UI rectangle to draw.
type PanelInstance struct {
	X, Y, W, H float64
	Color      Color
}

// Scene is everything a frontend needs to draw one frame. World sprites use arena
// coordinates (origin at the centre, y up); UI elements use screen coordinates.
type Scene struct {
	Phase   Phase
	Score   int
	Sprites []SpriteInstance
	Panels  []PanelInstance
	Images  []ImageInstance
	Labels  []LabelInstance
	Buttons []ButtonInstance
}

// WorldToScreen maps an arena position to screen pixels with the arena centred on screen.
func WorldToScreen(x, y float64) (float64, float64) {
	return ScreenWidth/2 + x, ScreenHeight/2 - y
}

type sceneQueries struct {
	sprites *ecs.Query[struct {
		*Position
		*Sprite
	}]
	panels  *ecs.Query[struct{ *Panel }]
	images  *ecs.Query[struct{ *Image }]
	labels  *ecs.Query[struct{ *Label }]
	buttons *ecs.Query[struct{ *Button }]
	scores  *ecs.Query[struct{ *ScoreCounter }]
}

func newSceneQueries(storage *ecs.Storage) sceneQueries {
	return sceneQueries{
		sprites: ecs.NewQuery[struct {
			*Position
			*Sprite
		}](storage),
		panels:  ecs.NewQuery[struct{ *Panel }](storage),
		images:  ecs.NewQuery[struct{ *Image }](storage),
		labels:  ecs.NewQuery[struct{ *Label }](storage),
		buttons: ecs.NewQuery[struct{ *Button }](storage),
		scores:  ecs.NewQuery[struct{ *ScoreCounter }](storage),
	}
}

func (q sceneQueries) build(phase Phase, lastScore int) Scene {
	scene := Scene{Phase: phase, Score: lastScore}

	if score, ok := q.scores.First(); ok {
		scene.Score = score.ScoreCounter.Kills
	}
	for item := range q.sprites.Iter() {
		scene.Sprites = append(scene.Sprites, SpriteInstance{
			Kind:  item.Sprite.Kind,
			Atlas: item.Sprite.Atlas,
			Frame: item.Sprite.Frame,
			X:     item.Position.X,
			Y:     item.Position.Y,
			Scale: item.Sprite.Scale,
		})
	}
	for item := range q.panels.Iter() {
		p := item.Panel
		scene.Panels = append(scene.Panels, PanelInstance{X: p.X, Y: p.Y, W: p.W, H: p.H, Color: p.Color})
	}
	for item := range q.images.Iter() {
		img := item.Image
		scene.Images = append(scene.Images, ImageInstance{Atlas: img.Atlas, X: img.X, Y: img.Y, W: img.W, H: img.H})
	}
	for item := range q.labels.Iter() {
		l := item.Label
		scene.Labels = append(scene.Labels, LabelInstance{Text: l.Text, X: l.X, Y: l.Y, Size: l.Size})
	}
	for item := range q.buttons.Iter() {
		b := item.Button
		scene.Buttons = append(scene.Buttons, ButtonInstance{
			Text:        b.Text,
			X:           b.X,
			Y:           b.Y,
			W:           b.W,
			H:           b.H,
			Color:       b.Color,
			Interaction: b.Interaction,
			Selected:    b.Selected,
		})
	}

	return scene
}
