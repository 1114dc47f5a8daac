package renderer

import (
	"image"

	"Scanline/internal/geometry"
)

// Background is the color written by Clear.
var Background = geometry.Black

// BytesPerPixel is the stride of one pixel in Screen.Pix.
const BytesPerPixel = 4

// Screen owns the framebuffer the rasterizer draws into.
//
// Pix is row-major with the origin at the top left. Each pixel takes four
// bytes: blue, green, red, then a fourth byte the rasterizer never writes.
// Presentation code relies on this byte order.
type Screen struct {
	Width  int
	Height int
	Pix    []byte
}

// NewScreen allocates a zeroed width*height buffer.
func NewScreen(width, height int) *Screen {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Screen{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Clear fills every pixel with Background.
func (s *Screen) Clear() {
	for i := 0; i < len(s.Pix); i += BytesPerPixel {
		s.Pix[i] = Background.B
		s.Pix[i+1] = Background.G
		s.Pix[i+2] = Background.R
	}
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (s *Screen) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// SetPixel writes c at (x, y). Writes outside the buffer are dropped.
func (s *Screen) SetPixel(x, y int, c geometry.Color) {
	if !s.InBounds(x, y) {
		return
	}
	s.set(x, y, c)
}

func (s *Screen) set(x, y int, c geometry.Color) {
	i := (y*s.Width + x) * BytesPerPixel
	s.Pix[i] = c.B
	s.Pix[i+1] = c.G
	s.Pix[i+2] = c.R
}

// Pixel returns the color stored at (x, y), and false when out of bounds.
func (s *Screen) Pixel(x, y int) (geometry.Color, bool) {
	if !s.InBounds(x, y) {
		return geometry.Color{}, false
	}
	i := (y*s.Width + x) * BytesPerPixel
	return geometry.Color{R: s.Pix[i+2], G: s.Pix[i+1], B: s.Pix[i]}, true
}

// Image converts the buffer to an opaque RGBA image.
func (s *Screen) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	s.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA writes the buffer into dst as RGBA bytes with alpha forced to 255.
// dst must hold Width*Height*4 bytes.
func (s *Screen) CopyRGBA(dst []byte) {
	for i := 0; i+3 < len(s.Pix) && i+3 < len(dst); i += BytesPerPixel {
		dst[i] = s.Pix[i+2]
		dst[i+1] = s.Pix[i+1]
		dst[i+2] = s.Pix[i]
		dst[i+3] = 0xFF
	}
}
