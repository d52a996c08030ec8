package imagecolor

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Lab is a color in CIE L*a*b* coordinates: L* in [0,100], a* and b* roughly
// in [-128,127]. go-colorful keeps all three components scaled down by 100, so
// the conversions below bridge the two representations.
type Lab struct {
	L float64
	A float64
	B float64
}

// FromColor converts an sRGB color into Lab (D65 white point).
func FromColor(c colorful.Color) Lab {
	l, a, b := c.Lab()
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// FromRGB8 converts 8-bit sRGB channels into Lab.
func FromRGB8(r, g, b uint8) Lab {
	return FromColor(colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255})
}

// FromHex parses a "#rrggbb" string into Lab.
func FromHex(hex string) (Lab, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Lab{}, err
	}
	return FromColor(c), nil
}

// Color returns the colorful representation. The result may fall outside the
// sRGB gamut; it is still exact for distance math.
func (l Lab) Color() colorful.Color {
	return colorful.Lab(l.L/100, l.A/100, l.B/100)
}

// Hex renders the nearest in-gamut sRGB hex string.
func (l Lab) Hex() string {
	return l.Color().Clamped().Hex()
}

// Chroma is the saturation measure sqrt(a*^2 + b*^2).
func (l Lab) Chroma() float64 {
	return math.Sqrt(l.A*l.A + l.B*l.B)
}

// DeltaE2000 is the CIEDE2000 perceptual difference to o on the standard
// scale, where a just-noticeable difference is near 2.3. go-colorful keeps
// its distances scaled down by 100 along with the Lab components.
func (l Lab) DeltaE2000(o Lab) float64 {
	return l.Color().DistanceCIEDE2000(o.Color()) * 100
}
