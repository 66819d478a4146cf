package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Pixel is a quantized 8-bit color
type Pixel struct {
	R, G, B int
}

// String formats the pixel as a PPM body line
func (p Pixel) String() string {
	return fmt.Sprintf("%d %d %d", p.R, p.G, p.B)
}

// RGBA converts the pixel to an opaque image color
func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B), A: 255}
}

// QuantizeColor turns an accumulated linear color into an 8-bit pixel. The sum
// is divided by samples, gamma corrected with gamma 2 (sqrt), clamped to
// [0, 0.999] and scaled by 256, so no channel can reach 256.
func QuantizeColor(sum core.Vec3, samples int) Pixel {
	scale := 1.0 / float64(samples)
	return Pixel{
		R: quantizeChannel(sum.X * scale),
		G: quantizeChannel(sum.Y * scale),
		B: quantizeChannel(sum.Z * scale),
	}
}

func quantizeChannel(linear float64) int {
	v := math.Sqrt(linear)
	// NaN (from a negative channel) fails both comparisons
	if !(v > 0) {
		return 0
	}
	if v > 0.999 {
		v = 0.999
	}
	return int(256 * v)
}
