package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/spaceshooter/game"
)

// readInput samples the keyboard and mouse. When the debug overlay owns the mouse or
// keyboard, that device reads as idle.
func readInput(mouseCaptured, keysCaptured bool) game.Input {
	var in game.Input
	if !keysCaptured {
		in.Left = ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
		in.Right = ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
		in.Up = ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW)
		in.Down = ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS)
		in.Shoot = ebiten.IsKeyPressed(ebiten.KeySpace)
		in.Confirm = ebiten.IsKeyPressed(ebiten.KeyEnter)
	}
	if !mouseCaptured {
		x, y := ebiten.CursorPosition()
		in.Pointer = game.Pointer{
			X:    float64(x),
			Y:    float64(y),
			Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		}
	}
	return in
}

// quitPressed reports a fresh Escape press.
func quitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
