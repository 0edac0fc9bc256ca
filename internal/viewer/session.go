// Package viewer ties the window, the trackball and the renderer together
// into the interactive surface viewer.
package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cassini/internal/config"
	"github.com/Faultbox/cassini/internal/engine/camera"
	"github.com/Faultbox/cassini/internal/engine/input"
	"github.com/Faultbox/cassini/internal/engine/renderer"
	"github.com/Faultbox/cassini/internal/engine/transform"
	"github.com/Faultbox/cassini/internal/engine/window"
	"github.com/Faultbox/cassini/internal/logger"
)

// waitTimeoutMS bounds how long Run blocks on SDL before checking the
// context and the config watcher.
const waitTimeoutMS = 250

// Session is one running viewer. All methods must be called from the
// goroutine that created it.
type Session struct {
	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	trackball *camera.Trackball
	composer  transform.Composer
	color     [4]float32

	watcher *config.Watcher
}

// New opens the window, builds the GL program and uploads the first mesh.
// Graphics failures are returned as *gpu.InitError.
func New(cfg *config.Config) (*Session, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	s := &Session{
		input:     input.New(),
		trackball: camera.NewTrackball(cfg.Window.Width, cfg.Window.Height),
		composer:  cfg.Composer(),
		color:     cfg.View.Color,
	}

	var err error
	s.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made current.
	width, height := s.window.GetSize()
	s.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.View.ClearColor,
	})
	if err != nil {
		s.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	m, err := buildMesh(cfg)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.renderer.Upload(m)

	if cfg.Watch {
		s.startWatcher(cfg.Source())
	}

	logger.Info("viewer initialized")
	return s, nil
}

func (s *Session) startWatcher(path string) {
	if path == "" {
		logger.Warn("watch requested but no config file was loaded")
		return
	}
	w, err := config.Watch(path)
	if err != nil {
		logger.Warn("config watch disabled", zap.String("path", path), zap.Error(err))
		return
	}
	s.watcher = w
	logger.Info("watching config", zap.String("path", w.Path()))
}

// Draw renders one frame with the current orientation and presents it.
func (s *Session) Draw() {
	frame := s.composer.ComposeFrame(s.trackball.ViewMatrix())
	s.renderer.Draw(frame, s.color)
	s.window.SwapBuffers()
}

// Run draws the first frame and then redraws only when input or a config
// reload asks for it. It returns when the user quits or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	logger.Info("starting event loop")
	s.Draw()

	for {
		select {
		case <-ctx.Done():
			logger.Info("event loop cancelled", zap.Error(ctx.Err()))
			return nil
		default:
		}

		redraw := s.pollConfig()

		if s.input.Wait(waitTimeoutMS) {
			logger.Info("quit requested")
			return nil
		}
		for _, e := range s.input.Events() {
			a := handleEvent(s.trackball, e)
			if a.quit {
				logger.Info("quit requested")
				return nil
			}
			if a.resize {
				s.renderer.Resize(s.window.GetSize())
			}
			redraw = redraw || a.redraw
		}

		if redraw {
			s.Draw()
		}
	}
}

// pollConfig applies a pending config reload without blocking.
func (s *Session) pollConfig() bool {
	if s.watcher == nil {
		return false
	}
	select {
	case cfg := <-s.watcher.Updates():
		if err := s.Regenerate(cfg); err != nil {
			logger.Warn("config reload rejected", zap.Error(err))
			return false
		}
		return true
	case err := <-s.watcher.Errors():
		logger.Warn("config reload failed", zap.Error(err))
	default:
	}
	return false
}

// Regenerate tessellates the surface described by cfg and replaces the
// uploaded mesh. The view transform and the color follow cfg as well.
func (s *Session) Regenerate(cfg *config.Config) error {
	m, err := buildMesh(cfg)
	if err != nil {
		return err
	}
	s.renderer.Upload(m)
	s.composer = cfg.Composer()
	s.color = cfg.View.Color
	logger.Info("mesh regenerated", zap.Int("triangles", m.TriangleCount()))
	return nil
}

// Close stops the watcher and releases GL and SDL resources.
func (s *Session) Close() {
	logger.Info("closing viewer")

	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			logger.Warn("failed to stop config watcher", zap.Error(err))
		}
		s.watcher = nil
	}
	if s.renderer != nil {
		s.renderer.Close()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Close()
		s.window = nil
	}
}
