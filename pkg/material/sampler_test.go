package material

import "github.com/df07/go-pathtracer/pkg/core"

// fixedSampler returns the same value for every draw
type fixedSampler float64

func (f fixedSampler) Get1D() float64 { return float64(f) }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(float64(f), float64(f))
}

// sequenceSampler replays a scripted list of values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}
