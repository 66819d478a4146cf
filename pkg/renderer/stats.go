package renderer

import (
	"fmt"
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	TotalTiles      int           // Number of tiles the image was split into
	NumWorkers      int           // Worker goroutines used
	Duration        time.Duration // Wall-clock render time
	AvgLuminance    float64       // Mean Rec. 709 luminance of the output in [0, 1]
}

// String summarizes the stats on one line
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples (%d/pixel), %d tiles on %d workers in %s, avg luminance %.3f",
		s.TotalPixels, s.TotalSamples, s.SamplesPerPixel, s.TotalTiles, s.NumWorkers, FormatDuration(s.Duration), s.AvgLuminance)
}

// FormatDuration renders d as whole minutes and seconds, e.g. "2 min, 5 sec"
func FormatDuration(d time.Duration) string {
	seconds := int(d / time.Second)
	return fmt.Sprintf("%d min, %d sec", seconds/60, seconds%60)
}

// averageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func averageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
