//go:build !ebiten

package engine

import (
	"runtime"
	"time"

	"Scanline/internal/config"
	"Scanline/internal/logger"
	"Scanline/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Backend is the window implementation compiled into this binary.
const Backend = config.BackendGLFW

// Run opens a window and presents a frame per tick until the window is
// closed, Esc is pressed, or a frame fails with cfg.ExitOnError set.
// R reloads the scene.
func Run(d *Driver, cfg config.Config) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "could not initialize glfw")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(d.Screen.Width, d.Screen.Height, cfg.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "could not create glfw window")
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "could not initialize OpenGL")
	}
	logger.Log.Info("Window opened",
		zap.String("backend", Backend),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Int("width", d.Screen.Width),
		zap.Int("height", d.Screen.Height))

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			d.RequestReload()
		}
	})

	b := newBlitter(d.Screen.Width, d.Screen.Height)
	defer b.delete()

	frame := time.Second / time.Duration(cfg.FPS)
	for !window.ShouldClose() {
		started := time.Now()
		if err := d.Frame(cfg.ExitOnError); err != nil {
			return err
		}
		fbw, fbh := window.GetFramebufferSize()
		b.present(d.Screen, int32(fbw), int32(fbh))
		window.SwapBuffers()
		glfw.PollEvents()

		if rest := frame - time.Since(started); rest > 0 {
			time.Sleep(rest)
		}
	}
	return nil
}

// blitter uploads the screen into a texture attached to a read framebuffer
// and blits it onto the window.
type blitter struct {
	tex, fbo uint32
	w, h     int32
}

func newBlitter(width, height int) *blitter {
	b := &blitter{w: int32(width), h: int32(height)}

	gl.GenTextures(1, &b.tex)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, b.w, b.h, 0, gl.BGRA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.tex, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return b
}

func (b *blitter) present(s *renderer.Screen, fbw, fbh int32) {
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, b.w, b.h, gl.BGRA, gl.UNSIGNED_BYTE, gl.Ptr(s.Pix))

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	// Screen rows run top down, GL rows bottom up.
	gl.BlitFramebuffer(0, 0, b.w, b.h, 0, fbh, fbw, 0, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

func (b *blitter) delete() {
	gl.DeleteFramebuffers(1, &b.fbo)
	gl.DeleteTextures(1, &b.tex)
}
