// Package millertug wires the navigator, palette and renderer to a terminal.
package millertug

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/filetug/millertug/pkg/files"
	"github.com/filetug/millertug/pkg/files/osfile"
	"github.com/filetug/millertug/pkg/millertug/ftcmd"
	"github.com/filetug/millertug/pkg/millertug/ftloop"
	"github.com/filetug/millertug/pkg/millertug/ftnav"
	"github.com/filetug/millertug/pkg/millertug/ftsettings"
	"github.com/filetug/millertug/pkg/millertug/ftui"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const eventBuffer = 64

var newScreen = tcell.NewScreen

var _ ftloop.Handler = (*App)(nil)

type App struct {
	screen   tcell.Screen
	nav      *ftnav.Navigator
	palette  *ftcmd.Palette
	renderer *ftui.Renderer
	host     string
	logger   *zap.Logger
}

func NewApp(screen tcell.Screen, store files.Store, start string, settings ftsettings.Settings, logger *zap.Logger) *App {
	cfg := ftnav.Config{
		RequiredColumns: settings.RequiredColumns,
		ColumnMargin:    settings.ColumnMargin,
	}
	return &App{
		screen:   screen,
		nav:      ftnav.NewNavigator(store, start, cfg, ftnav.WithLogger(logger.Named("nav"))),
		palette:  ftcmd.NewPalette(settings.ErrorDisplay),
		renderer: ftui.NewRenderer(store, settings.PreviewBytes, ftui.WithLogger(logger.Named("ui"))),
		host:     store.RootTitle(),
		logger:   logger,
	}
}

func (a *App) Navigator() *ftnav.Navigator { return a.nav }
func (a *App) Palette() *ftcmd.Palette     { return a.palette }

// HandleEvent routes keys to the palette first and to navigation otherwise.
func (a *App) HandleEvent(ev tcell.Event) (ftloop.Outcome, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return ftloop.Redraw, nil
	case *tcell.EventKey:
		if handled, err := a.palette.HandleKey(ev, a.nav); handled {
			return ftloop.Redraw, err
		}
		return a.handleAction(ftloop.ActionForKey(ev))
	default:
		return ftloop.Nothing, nil
	}
}

func (a *App) handleAction(action ftloop.Action) (ftloop.Outcome, error) {
	var changed bool
	switch action {
	case ftloop.NavigateLeft:
		changed = a.nav.MoveLeft()
	case ftloop.NavigateRight:
		changed = a.nav.MoveRight()
	case ftloop.SelectUp:
		changed = a.nav.SelectUp()
	case ftloop.SelectDown:
		changed = a.nav.SelectDown()
	case ftloop.DeleteRequest:
		a.palette.OpenDelete()
		changed = true
	case ftloop.Cancel, ftloop.Quit:
		return ftloop.Exit, nil
	}
	if !changed {
		return ftloop.Nothing, nil
	}
	a.logger.Debug("action", zap.Stringer("action", action),
		zap.String("first", a.nav.FirstVisibleColumn()), zap.Int("selected", a.nav.SelectedColumn()))
	return ftloop.Redraw, nil
}

func (a *App) PollIO(timeout time.Duration) (bool, error) {
	return a.nav.PollIO(timeout)
}

func (a *App) Expire(now time.Time) bool {
	return a.palette.Expire(now)
}

// Report logs err and shows it in the error banner.
func (a *App) Report(err error) {
	a.logger.Error("operation failed", zap.Error(err))
	a.palette.ShowError(err)
}

func (a *App) Draw() {
	a.renderer.Draw(a.screen, a.frame())
}

func (a *App) frame() ftui.Frame {
	f := ftui.Frame{
		Columns:     a.nav.VisibleColumns(),
		Required:    a.nav.RequiredColumns(),
		Margin:      a.nav.ColumnMargin(),
		Palette:     a.palette.Line(a.nav),
		PaletteMode: a.palette.Mode(),
	}
	if e, ok := a.nav.FocusedEntry(); ok {
		path := e.Path
		if target, ok := a.nav.DeleteTarget(); ok {
			path = target
		}
		f.Status = a.host + ":" + path
	}
	return f
}

// Run drives the event loop until quit, then waits for pending deletions.
func (a *App) Run(ctx context.Context) error {
	events := ftloop.PumpEvents(a.screen, eventBuffer)
	scheduler := ftloop.NewScheduler(events, a)
	a.Draw()
	err := scheduler.Run(ctx, a.Draw, a.Report)
	if closeErr := a.nav.Close(); closeErr != nil {
		a.logger.Error("pending deletions failed", zap.Error(closeErr))
		err = errors.Join(err, closeErr)
	}
	return err
}

// Run opens the terminal and browses start until the user quits.
func Run(ctx context.Context, start string, settings ftsettings.Settings, logger *zap.Logger) error {
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	app := NewApp(screen, osfile.NewStore(), start, settings, logger)
	logger.Info("started", zap.String("start", start), zap.Int("required_columns", settings.RequiredColumns))
	return app.Run(ctx)
}
