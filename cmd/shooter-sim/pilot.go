package main

import "github.com/plus3/spaceshooter/game"

// sweepTicks is how long the pilot holds one direction before turning.
const sweepTicks = 90

// pilot plays without a human: it sweeps left and right firing continuously, and clicks
// New Game whenever a menu is up.
type pilot struct {
	tick    uint64
	pressed bool
}

func (p *pilot) input(phase game.Phase, scene game.Scene) game.Input {
	p.tick++

	switch phase {
	case game.PhasePlaying:
		p.pressed = false
		left := (p.tick/sweepTicks)%2 == 0
		return game.Input{Left: left, Right: !left, Shoot: true}

	case game.PhaseMenu, game.PhaseGameOver:
		for _, b := range scene.Buttons {
			if b.Text != "New Game" {
				continue
			}
			// Press on one tick and release on the next so every click is a fresh edge.
			p.pressed = !p.pressed
			return game.Input{Pointer: game.Pointer{
				X:    b.X + b.W/2,
				Y:    b.Y + b.H/2,
				Down: p.pressed,
			}}
		}
	}

	return game.Input{}
}
