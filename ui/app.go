package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

// clockInterval refreshes the clock line
const clockInterval = time.Second

// App runs the terminal event loop for one calculator session
type App struct {
	screen  tcell.Screen
	handler *InputHandler
	view    *View

	// Static status fields
	Remote  string
	NoAudio bool

	now func() time.Time
}

// NewApp wires a screen, handler and view; the screen must be initialized
func NewApp(screen tcell.Screen, handler *InputHandler, view *View) *App {
	return &App{
		screen:  screen,
		handler: handler,
		view:    view,
		now:     time.Now,
	}
}

// Run draws and handles events until quit or ctx is done
// Returns nil on a normal quit
func (a *App) Run(ctx context.Context) error {
	a.screen.EnablePaste()
	defer a.screen.DisablePaste()

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(clockInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !a.handler.HandleEvent(ev) {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				a.view.Sync()
			}
			a.draw()

		case <-ticker.C:
			a.draw()
		}
	}
}

func (a *App) draw() {
	a.view.Draw(State{
		Display: a.handler.Display(),
		Now:     a.now(),
		Muted:   a.handler.Muted(),
		NoAudio: a.NoAudio,
		Remote:  a.Remote,
		Status:  a.handler.Status(),
	})
}
