// Package raster paints board frames onto an in-memory RGBA image.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/hylla/kanvas/internal/layout"
	"github.com/hylla/kanvas/internal/render"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrInvalidScale reports a non-positive pixel scale.
var ErrInvalidScale = errors.New("invalid raster scale")

// Option configures a Surface.
type Option func(*options)

type options struct {
	scale    float64
	fontPath string
}

// WithScale sets the number of pixels per logical unit.
func WithScale(scale float64) Option {
	return func(o *options) {
		o.scale = scale
	}
}

// WithFontPath loads a TrueType face for text. An empty path keeps the
// built-in bitmap face.
func WithFontPath(path string) Option {
	return func(o *options) {
		o.fontPath = path
	}
}

// Surface implements render.Surface on a gg drawing context.
type Surface struct {
	dc    *gg.Context
	scale float64
	faces map[render.FontRole]font.Face
}

// New allocates a surface covering the geometry's canvas.
func New(g layout.Geometry, opts ...Option) (*Surface, error) {
	cfg := options{scale: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.scale <= 0 || math.IsNaN(cfg.scale) || math.IsInf(cfg.scale, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidScale, cfg.scale)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	width := int(math.Ceil(g.CanvasWidth * cfg.scale))
	height := int(math.Ceil(g.CanvasHeight * cfg.scale))
	dc := gg.NewContext(width, height)
	dc.Scale(cfg.scale, cfg.scale)

	faces, err := loadFaces(cfg.fontPath, cfg.scale)
	if err != nil {
		return nil, err
	}
	return &Surface{dc: dc, scale: cfg.scale, faces: faces}, nil
}

// loadFaces resolves one face per font role. gg positions glyphs through the
// context matrix but rasterizes them unscaled, so point sizes are scaled here.
func loadFaces(path string, scale float64) (map[render.FontRole]font.Face, error) {
	faces := map[render.FontRole]font.Face{}
	for _, role := range []render.FontRole{render.FontCard, render.FontLabel} {
		if path == "" {
			faces[role] = basicfont.Face7x13
			continue
		}
		face, err := gg.LoadFontFace(path, role.Size()*scale)
		if err != nil {
			return nil, fmt.Errorf("load font %q: %w", path, err)
		}
		faces[role] = face
	}
	return faces, nil
}

// Clear floods the whole image with the style's fill.
func (s *Surface) Clear(st render.Style) {
	s.setColor(st.Fill, 1)
	s.dc.Clear()
}

// FillRect paints the shadow first, then the body.
func (s *Surface) FillRect(r layout.Rect, st render.Style) {
	opacity := st.Opacity()
	s.shadow(r, st.Shadow, opacity)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.setColor(st.Fill, opacity)
	s.dc.Fill()
}

// StrokeRect outlines r.
func (s *Surface) StrokeRect(r layout.Rect, st render.Style) {
	width := st.LineWidth
	if width <= 0 {
		width = 1
	}
	s.dc.SetLineWidth(width)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.setColor(st.Stroke, st.Opacity())
	s.dc.Stroke()
}

// Text draws str with its baseline at the anchor.
func (s *Surface) Text(str string, at layout.Point, st render.Style) {
	face, ok := s.faces[st.Font]
	if !ok {
		face = basicfont.Face7x13
	}
	s.dc.SetFontFace(face)
	s.setColor(st.Text, st.Opacity())
	s.dc.DrawString(str, at.X, at.Y)
}

// shadow approximates a blurred shadow with rings of decreasing alpha.
func (s *Surface) shadow(r layout.Rect, sh render.Shadow, opacity float64) {
	if sh.Alpha <= 0 || sh.Blur <= 0 {
		return
	}
	steps := int(math.Ceil(sh.Blur / 2))
	alpha := sh.Alpha * opacity / float64(steps)
	for i := steps; i >= 1; i-- {
		grow := sh.Blur * float64(i) / float64(steps)
		s.dc.DrawRectangle(r.X-grow/2, r.Y-grow/2, r.W+grow, r.H+grow)
		s.setColor(sh.Color, alpha)
		s.dc.Fill()
	}
}

func (s *Surface) setColor(c colorful.Color, alpha float64) {
	s.dc.SetRGBA(c.R, c.G, c.B, alpha)
}

// Scale returns the pixels per logical unit.
func (s *Surface) Scale() float64 {
	return s.scale
}

// Image returns the backing image.
func (s *Surface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the current image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the current image to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %q: %w", path, err)
	}
	return nil
}
