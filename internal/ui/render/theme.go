package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/runmark/internal/highlight"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	SeparatorFg tcell.Color
	ErrorFg     tcell.Color
	MatchFg     tcell.Color
	// Palette colors marked segments by context tag.
	Palette [highlight.TagCount]tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color33,
		HeaderFg:    tcell.ColorWhite,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		SeparatorFg: tcell.ColorLightSlateGray,
		ErrorFg:     tcell.ColorRed,
		MatchFg:     tcell.ColorBlack,
		Palette: [highlight.TagCount]tcell.Color{
			tcell.ColorYellow,
			tcell.ColorAqua,
			tcell.ColorLime,
			tcell.ColorFuchsia,
			tcell.ColorOrange,
			tcell.ColorSkyblue,
			tcell.ColorPink,
			tcell.ColorSilver,
		},
	}
}

// WithPalette returns the theme with palette entries replaced where set.
func (t ColorTheme) WithPalette(palette [highlight.TagCount]tcell.Color) ColorTheme {
	for i, c := range palette {
		if c != tcell.ColorDefault {
			t.Palette[i] = c
		}
	}
	return t
}

func (t ColorTheme) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)
}

// segmentStyle colors a marked segment by its tag; the active match is
// drawn reversed and bold.
func (t ColorTheme) segmentStyle(seg highlight.Segment) tcell.Style {
	if !seg.Marked {
		return t.baseStyle()
	}
	style := tcell.StyleDefault.Background(t.Palette[seg.Tag%highlight.TagCount]).Foreground(t.MatchFg)
	if seg.Active {
		style = style.Reverse(true).Bold(true)
	}
	return style
}
