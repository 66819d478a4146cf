package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing. A Sampler is not safe for
// concurrent use; every render goroutine owns its own.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// RandomFloat returns a uniform value in [min, max)
func RandomFloat(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec returns a vector with each component uniform in [0, 1)
func RandomVec(sampler Sampler) Vec3 {
	return RandomVecRange(sampler, 0, 1)
}

// RandomVecRange returns a vector with each component uniform in [min, max)
func RandomVecRange(sampler Sampler, min, max float64) Vec3 {
	x := RandomFloat(sampler, min, max)
	y := RandomFloat(sampler, min, max)
	z := RandomFloat(sampler, min, max)
	return NewVec3(x, y, z)
}

// RandomInUnitSphere rejection-samples a point uniformly inside the unit ball
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVecRange(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector returns a uniformly distributed point on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	a := RandomFloat(sampler, 0, 2*math.Pi)
	z := RandomFloat(sampler, -1, 1)
	r := math.Sqrt(1 - z*z)
	return NewVec3(r*math.Cos(a), r*math.Sin(a), z)
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		sample := sampler.Get2D()
		p := NewVec3(2*sample.X-1, 2*sample.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
