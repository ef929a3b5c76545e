package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, events <-chan tcell.Event) (tcell.Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-events:
		return ev, ok
	case <-time.After(time.Second):
		require.FailNow(t, "no event and channel still open")
		return nil, false
	}
}

func TestPollEvents(t *testing.T) {
	t.Run("forwards events", func(t *testing.T) {
		screen := newScreen(t, 10, 10)
		done := make(chan struct{})
		defer close(done)

		events := pollEvents(screen, done, 1)
		require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

		ev, ok := receive(t, events)
		require.True(t, ok)
		key, isKey := ev.(*tcell.EventKey)
		require.True(t, isKey)
		assert.Equal(t, tcell.KeyEnter, key.Key())
	})

	t.Run("stops once done is closed", func(t *testing.T) {
		screen := newScreen(t, 10, 10)
		done := make(chan struct{})

		events := pollEvents(screen, done, 0)
		close(done)
		require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))

		_, ok := receive(t, events)
		assert.False(t, ok, "nothing is delivered after done")
	})

	t.Run("stops when the screen is finalized", func(t *testing.T) {
		screen := tcell.NewSimulationScreen("UTF-8")
		require.NoError(t, screen.Init())
		done := make(chan struct{})
		defer close(done)

		events := pollEvents(screen, done, 1)
		screen.Fini()

		_, ok := receive(t, events)
		assert.False(t, ok)
	})
}
