//go:build ebiten

package engine

import (
	"Scanline/internal/config"
	"Scanline/internal/logger"
	"Scanline/internal/renderer"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Backend is the window implementation compiled into this binary.
const Backend = config.BackendEbiten

type game struct {
	d           *Driver
	exitOnError bool
	img         *ebiten.Image
	rgba        []byte
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.d.RequestReload()
	}
	return g.d.Frame(g.exitOnError)
}

func (g *game) Draw(screen *ebiten.Image) {
	g.d.Screen.CopyRGBA(g.rgba)
	g.img.WritePixels(g.rgba)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.d.Screen.Width, g.d.Screen.Height
}

// Run opens a window and presents a frame per tick until the window is
// closed, Esc is pressed, or a frame fails with cfg.ExitOnError set.
// R reloads the scene.
func Run(d *Driver, cfg config.Config) error {
	w, h := d.Screen.Width, d.Screen.Height
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.FPS)

	g := &game{
		d:           d,
		exitOnError: cfg.ExitOnError,
		img:         ebiten.NewImage(w, h),
		rgba:        make([]byte, w*h*renderer.BytesPerPixel),
	}
	logger.Log.Info("Window opened",
		zap.String("backend", Backend), zap.Int("width", w), zap.Int("height", h))

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
