package renderer

import (
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// progressTracker logs completion each time another tenth of the pixels is done
type progressTracker struct {
	mu          sync.Mutex
	logger      core.Logger
	start       time.Time
	totalPixels int
	donePixels  int
	nextReport  int // Next percentage to log
}

func newProgressTracker(logger core.Logger, totalPixels int) *progressTracker {
	return &progressTracker{
		logger:      logger,
		start:       time.Now(),
		totalPixels: totalPixels,
		nextReport:  10,
	}
}

// tileDone records a finished tile; safe for concurrent use
func (p *progressTracker) tileDone(pixels int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.donePixels += pixels
	percent := p.donePixels * 100 / p.totalPixels
	if percent < p.nextReport {
		return
	}
	for p.nextReport <= percent {
		p.nextReport += 10
	}

	elapsed := time.Since(p.start)
	remaining := time.Duration(float64(elapsed) * float64(p.totalPixels-p.donePixels) / float64(p.donePixels))
	p.logger.Printf("Rendering %6.2f%%, estimated remaining: %3d sec\n",
		float64(p.donePixels)*100/float64(p.totalPixels), int(remaining.Seconds()))
}
