package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgb is a color with float channels in [0,1]
type rgb colorful.Color

// parseHex reads #rgb or #rrggbb, with or without the leading hash.
// Invalid input yields white.
func parseHex(s string) rgb {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return rgb{1, 1, 1}
	}
	return rgb(c)
}

// NRGBA converts to an 8-bit color with the given alpha
func (c rgb) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(clamp01(alpha)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
