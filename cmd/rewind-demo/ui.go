package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rewind"
	"github.com/dshills/rewind/internal/config"
)

// app owns the screen, the item list and the stack. Everything runs on the
// event loop goroutine; config reloads are posted back onto it as events so
// the stack keeps a single owner.
type app struct {
	screen  tcell.Screen
	stack   *rewind.Stack
	items   []string
	nextID  int
	message string
	watcher *config.Watcher
}

// configEvent carries a reloaded config into the event loop.
type configEvent struct {
	when time.Time
	cfg  config.Config
}

func (e *configEvent) When() time.Time { return e.when }

func newApp(stk *rewind.Stack, cfg config.Config, configPath string) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen: screen,
		stack:  stk,
		items:  append([]string{}, cfg.Seed...),
		nextID: len(cfg.Seed) + 1,
	}

	if configPath != "" {
		w, err := config.Watch(configPath,
			func(c config.Config) {
				_ = screen.PostEvent(&configEvent{when: time.Now(), cfg: c})
			},
			nil)
		if err != nil {
			screen.Fini()
			return nil, err
		}
		a.watcher = w
	}

	return a, nil
}

func (a *app) shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.screen.Fini()
}

func (a *app) runLoop() error {
	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()

		case *configEvent:
			a.stack.SetLimit(ev.cfg.Limit)
			a.message = fmt.Sprintf("config reloaded, limit=%d", ev.cfg.Limit)

		case *tcell.EventKey:
			if done := a.handleKey(ev); done {
				return nil
			}
		}
	}
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if ev.Key() != tcell.KeyRune {
		return false
	}

	a.message = ""
	switch ev.Rune() {
	case 'q':
		return true
	case 'a':
		a.report(a.addItem(fmt.Sprintf("item %d", a.nextID)))
		a.nextID++
	case 'd':
		a.report(a.removeLast())
	case 'g':
		a.report(a.addBatch(3))
	case 'u':
		a.report(a.stack.Undo())
	case 'r':
		a.report(a.stack.Redo())
	case 's':
		a.stack.Savepoint()
		a.message = "savepoint recorded"
	case 'c':
		a.stack.Clear()
		a.message = "history cleared"
	}
	return false
}

func (a *app) report(err error) {
	if err != nil {
		a.message = err.Error()
	}
}

// addItem appends an item as an undoable action.
func (a *app) addItem(name string) error {
	_, err := a.stack.Undoable(
		func(c *rewind.Call) error {
			a.items = append(a.items, name)
			c.SetText("Add %q", name)
			return nil
		},
		func(c *rewind.Call) error {
			a.items = a.items[:len(a.items)-1]
			return nil
		})()
	return err
}

// removeLast removes the last item; its reverse restores it.
func (a *app) removeLast() error {
	if len(a.items) == 0 {
		a.message = "nothing to remove"
		return nil
	}
	_, err := a.stack.Undoable(
		func(c *rewind.Call) error {
			last := a.items[len(a.items)-1]
			a.items = a.items[:len(a.items)-1]
			c.State["value"] = last
			c.SetText("Remove %q", last)
			return nil
		},
		func(c *rewind.Call) error {
			a.items = append(a.items, c.State["value"].(string))
			return nil
		})()
	return err
}

// addBatch adds n items as one grouped undo unit.
func (a *app) addBatch(n int) error {
	return a.stack.Grouped(fmt.Sprintf("Add %d items", n), func() error {
		for i := 0; i < n; i++ {
			if err := a.addItem(fmt.Sprintf("item %d", a.nextID)); err != nil {
				return err
			}
			a.nextID++
		}
		return nil
	})
}

func (a *app) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()

	title := tcell.StyleDefault.Bold(true)
	a.print(0, 0, title, "rewind demo — a:add d:remove g:group u:undo r:redo s:savepoint c:clear q:quit")

	for i, item := range a.items {
		y := i + 2
		if y >= height-2 {
			break
		}
		a.print(2, y, tcell.StyleDefault, fmt.Sprintf("%2d. %s", i+1, item))
	}

	status := fmt.Sprintf("%s | %s | done %d redo %d | changed %v",
		orDash(a.stack.UndoText()), orDash(a.stack.RedoText()),
		a.stack.UndoCount(), a.stack.RedoCount(), a.stack.HasChanged())
	a.print(0, height-2, tcell.StyleDefault.Reverse(true), pad(status, width))

	if a.message != "" {
		a.print(0, height-1, tcell.StyleDefault.Foreground(tcell.ColorYellow), a.message)
	}

	a.screen.Show()
}

func (a *app) print(x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		a.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
