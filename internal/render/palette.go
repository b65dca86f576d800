package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds every color the board is drawn with.
type Palette struct {
	Background colorful.Color
	Band       colorful.Color
	Label      colorful.Color
	Card       colorful.Color
	CardStroke colorful.Color
	CardText   colorful.Color
	CardShadow colorful.Color
	DragFill   colorful.Color
	DragStroke colorful.Color
	DragText   colorful.Color
	DragShadow colorful.Color
	// DragAlpha is the opacity of the dragged card body.
	DragAlpha float64
}

// PaletteHex is the textual form of a Palette. Empty fields fall back to the
// default palette.
type PaletteHex struct {
	Background string
	Band       string
	Label      string
	Card       string
	CardStroke string
	CardText   string
	CardShadow string
	DragFill   string
	DragStroke string
	DragText   string
	DragShadow string
	DragAlpha  float64
}

// DefaultPaletteHex returns the standard board colors.
func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Background: "#fafcff",
		Band:       "#f0f0f0",
		Label:      "#222222",
		Card:       "#ffffff",
		CardStroke: "#aaaaaa",
		CardText:   "#333333",
		CardShadow: "#000000",
		DragFill:   "#e3f7fa",
		DragStroke: "#41b8c3",
		DragText:   "#2299aa",
		DragShadow: "#4298ee",
		DragAlpha:  0.8,
	}
}

// DefaultPalette returns the parsed standard board colors.
func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultPaletteHex())
	if err != nil {
		panic(fmt.Sprintf("default palette: %v", err))
	}
	return p
}

// ParsePalette parses hex colors, filling blanks from the defaults.
func ParsePalette(in PaletteHex) (Palette, error) {
	def := DefaultPaletteHex()
	var (
		out  Palette
		errs []string
	)
	parse := func(name, raw, fallback string) colorful.Color {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			raw = fallback
		}
		if !strings.HasPrefix(raw, "#") {
			raw = "#" + raw
		}
		c, err := colorful.Hex(raw)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s %q", name, raw))
		}
		return c
	}
	out.Background = parse("background", in.Background, def.Background)
	out.Band = parse("band", in.Band, def.Band)
	out.Label = parse("label", in.Label, def.Label)
	out.Card = parse("card", in.Card, def.Card)
	out.CardStroke = parse("card_stroke", in.CardStroke, def.CardStroke)
	out.CardText = parse("card_text", in.CardText, def.CardText)
	out.CardShadow = parse("card_shadow", in.CardShadow, def.CardShadow)
	out.DragFill = parse("drag_fill", in.DragFill, def.DragFill)
	out.DragStroke = parse("drag_stroke", in.DragStroke, def.DragStroke)
	out.DragText = parse("drag_text", in.DragText, def.DragText)
	out.DragShadow = parse("drag_shadow", in.DragShadow, def.DragShadow)

	out.DragAlpha = in.DragAlpha
	if out.DragAlpha == 0 {
		out.DragAlpha = def.DragAlpha
	}
	if out.DragAlpha < 0 || out.DragAlpha > 1 {
		errs = append(errs, fmt.Sprintf("drag_alpha %g outside [0, 1]", in.DragAlpha))
	}

	if len(errs) > 0 {
		return Palette{}, fmt.Errorf("%w: %s", ErrInvalidPalette, strings.Join(errs, ", "))
	}
	return out, nil
}
