package game

// Pointer is the mouse (or touch) state in screen coordinates.
type Pointer struct {
	X, Y float64
	Down bool
}

// Input is the held-key state for one Step.
type Input struct {
	Left, Right, Up, Down bool
	Shoot                 bool
	// Confirm activates the selected menu button.
	Confirm bool
	Pointer Pointer
}

// Intent folds the directional keys into a unit step per axis. Opposing keys cancel.
func (in Input) Intent() (x, y float64) {
	if in.Left {
		x--
	}
	if in.Right {
		x++
	}
	if in.Up {
		y++
	}
	if in.Down {
		y--
	}
	return x, y
}

// Controls is the input singleton: this step's held state and the previous step's, so
// systems that only run in some phases can still detect presses.
type Controls struct {
	Held, Prev Input
}

func (c *Controls) update(in Input) {
	c.Prev = c.Held
	c.Held = in
}
