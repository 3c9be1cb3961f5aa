package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/prism/internal/config"
	"github.com/taigrr/prism/pkg/input"
	"github.com/taigrr/prism/pkg/render"
)

const (
	mouseOn  = "\x1b[?1003h\x1b[?1006h" // any-event tracking, SGR encoding
	mouseOff = "\x1b[?1003l\x1b[?1006l"
)

func newFlyCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "fly <model>",
		Short: "Explore a model in the terminal",
		Long: `Draw a model live in the terminal.

Controls:
  Mouse drag  - Orbit around the model, or look around in free mode
  Scroll      - Zoom in/out (orbit)
  W/A/S/D     - Move forward/left/back/right (free)
  E/Q         - Move up/down (free)
  Tab         - Switch between orbit and free camera
  Space       - Spin the model
  R           - Reset spin and view
  X           - Toggle wireframe
  ?           - Toggle status bar
  Esc         - Quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFly(cmd.Context(), args[0], watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the model when it changes")
	return cmd
}

func (a *app) runFly(ctx context.Context, path string, watch bool) error {
	v, err := a.newViewer(path)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		a.log.Warn("resize terminal", zap.Error(err))
	}
	fmt.Fprint(os.Stdout, mouseOn)

	defer func() {
		fmt.Fprint(os.Stdout, mouseOff)
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			a.log.Warn("shutdown terminal", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var changed <-chan struct{}
	if watch {
		ch, closeWatch, err := a.watchModel(ctx, path)
		if err != nil {
			return err
		}
		defer closeWatch()
		changed = ch
	}

	s := &flySession{
		viewer:     v,
		translator: input.NewTranslator(),
		hud:        newHUD(filepath.Base(path)),
		fb:         render.FramebufferForCells(width, height),
	}

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Camera.FPS))
	defer ticker.Stop()

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				term.Erase()
				if err := term.Resize(size.Width, size.Height); err != nil {
					a.log.Warn("resize terminal", zap.Error(err))
				}
			}
			if s.handle(ev) {
				return nil
			}

		case <-changed:
			if err := v.reload(); err != nil {
				a.log.Warn("keeping previous model", zap.Error(err))
			}

		case now := <-ticker.C:
			if err := s.frame(now); err != nil {
				return err
			}
			term.Draw(s.fb)
			term.Draw(s.hud)
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// flySession is the interactive state of the fly command. All of it is
// touched from the command's single event loop.
type flySession struct {
	*viewer

	translator *input.Translator
	hud        *hud
	fb         *render.Framebuffer
}

// handle applies one terminal event and reports whether to quit.
func (s *flySession) handle(ev uv.Event) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		s.fb = render.FramebufferForCells(ev.Width, ev.Height)
		return false

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("space"):
			s.spinner.Impulse(
				(rand.Float64()-0.5)*0.3,
				(rand.Float64()-0.5)*0.3,
				(rand.Float64()-0.5)*0.3,
			)
			return false
		case ev.MatchString("r"):
			s.spinner.Reset()
			s.resetView()
			return false
		case ev.MatchString("tab"):
			s.toggleMode()
			return false
		case ev.MatchString("x"):
			s.painter.Wireframe = !s.painter.Wireframe
			return false
		case ev.MatchString("?", "shift+/"):
			s.hud.show = !s.hud.show
			return false
		}
	}

	if nev, ok := s.translator.Translate(ev); ok {
		s.camera.HandleEvent(nev)
	}
	return false
}

// frame steps the scene and paints it into the framebuffer.
func (s *flySession) frame(now time.Time) error {
	if err := s.step(); err != nil {
		return err
	}
	drawn := s.paint(s.fb)

	s.hud.tick(now)
	s.hud.triangles = drawn
	s.hud.wireframe = s.painter.Wireframe
	s.hud.mode = config.ModeOrbit
	if s.camera.FreeControls() != nil {
		s.hud.mode = config.ModeFree
	}
	return nil
}
