package engine

import (
	"time"

	"Scanline/internal/loader"
	"Scanline/internal/logger"
	"Scanline/internal/renderer"
	"Scanline/internal/scene"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Driver owns the loaded scene and the screen it is drawn into. Frames are
// drawn at the time elapsed since the last successful load.
type Driver struct {
	ScenePath string
	Screen    *renderer.Screen

	scene   *scene.Scene
	start   time.Time
	now     func() time.Time
	reload  chan struct{}
	lastErr string
}

func NewDriver(scenePath string, width, height int) *Driver {
	return &Driver{
		ScenePath: scenePath,
		Screen:    renderer.NewScreen(width, height),
		now:       time.Now,
		reload:    make(chan struct{}, 1),
	}
}

// Load reads the scene file and restarts the clock.
func (d *Driver) Load() error {
	sc, err := loader.LoadScene(d.ScenePath)
	if err != nil {
		return err
	}
	d.scene = sc
	d.start = d.now()
	d.lastErr = ""
	return nil
}

// Reload is Load that keeps the current scene when the file no longer parses.
func (d *Driver) Reload() error {
	if err := d.Load(); err != nil {
		logger.Log.Error("Scene reload failed, keeping previous scene",
			zap.String("path", d.ScenePath), zap.Error(err))
		return err
	}
	logger.Log.Info("Scene reloaded", zap.String("path", d.ScenePath))
	return nil
}

// RequestReload schedules a reload before the next frame. Requests made while
// one is pending are merged.
func (d *Driver) RequestReload() {
	select {
	case d.reload <- struct{}{}:
	default:
	}
}

func (d *Driver) Scene() *scene.Scene {
	return d.scene
}

// Elapsed returns the seconds since the last successful load.
func (d *Driver) Elapsed() float32 {
	return float32(d.now().Sub(d.start).Seconds())
}

// DrawFrame clears the screen and draws the scene at time t. A failed pass
// leaves the screen cleared.
func (d *Driver) DrawFrame(t float32) error {
	if d.scene == nil {
		return errors.New("no scene loaded")
	}
	d.Screen.Clear()
	if err := scene.DrawScene(d.Screen, d.scene, t); err != nil {
		d.Screen.Clear()
		return err
	}
	return nil
}

// Frame runs one iteration of a window loop: a pending reload, then a draw at
// the current time. Draw errors are logged once per distinct message and
// only returned when exitOnError is set.
func (d *Driver) Frame(exitOnError bool) error {
	select {
	case <-d.reload:
		_ = d.Reload()
	default:
	}

	err := d.DrawFrame(d.Elapsed())
	if err == nil {
		d.lastErr = ""
		return nil
	}
	if exitOnError {
		return err
	}
	if msg := err.Error(); msg != d.lastErr {
		logger.Log.Error("Error encountered while drawing scene", zap.Error(err))
		d.lastErr = msg
	}
	return nil
}

// RenderToFile draws a single frame at time t and saves it as an image.
func (d *Driver) RenderToFile(path string, t float32) error {
	if err := d.DrawFrame(t); err != nil {
		return err
	}
	if err := d.Screen.SaveImage(path); err != nil {
		return err
	}
	logger.Log.Info("Frame written", zap.String("path", path), zap.Float32("time", t))
	return nil
}
