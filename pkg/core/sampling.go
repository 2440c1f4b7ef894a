package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// degenerateCrossLength is the cross product length below which a normal is treated
// as parallel to the reference up axis
const degenerateCrossLength = 1e-8

// Sampler provides the random stream used for stochastic BRDF decisions.
// Each execution unit owns its own Sampler; implementations are not safe for concurrent use.
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

// NewSeededSampler creates a sampler with a deterministic seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// NewEntropySampler creates a sampler seeded once from OS entropy
func NewEntropySampler() *RandomSampler {
	return NewSeededSampler(EntropySeed())
}

// EntropySeed reads a seed from the OS entropy source, falling back to the clock
func EntropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1), drawn in X then Y order
func (r *RandomSampler) Get2D() Vec2 {
	x := r.random.Float64()
	y := r.random.Float64()
	return NewVec2(x, y)
}

// SequenceSampler replays a fixed list of values, wrapping around at the end.
// Useful for tests that need to pin exact draws.
type SequenceSampler struct {
	values []float64
	next   int
}

// NewSequenceSampler creates a sampler that returns values in order
func NewSequenceSampler(values ...float64) *SequenceSampler {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &SequenceSampler{values: values}
}

// Get1D returns the next value in the sequence
func (s *SequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Get2D returns the next two values in the sequence
func (s *SequenceSampler) Get2D() Vec2 {
	x := s.Get1D()
	y := s.Get1D()
	return NewVec2(x, y)
}

// HemisphereBasis builds an orthonormal frame {u, v, w} with w along the normal.
// u = normalize(w × up), v = normalize(u × w). When the normal is parallel to
// WorldUp the X axis is used as the reference instead.
func HemisphereBasis(normal Vec3) (u, v, w Vec3) {
	w = normal
	cross := w.Cross(WorldUp)
	if cross.Length() < degenerateCrossLength {
		cross = w.Cross(NewVec3(1, 0, 0))
	}
	u = cross.Normalize()
	v = u.Cross(w).Normalize()
	return u, v, w
}

// SampleUniformHemisphere maps a 2D sample to a direction distributed uniformly over
// the hemisphere around normal. sample.X becomes the cosine to the normal, sample.Y
// the azimuth fraction.
func SampleUniformHemisphere(normal Vec3, sample Vec2) Vec3 {
	u1, u2 := sample.X, sample.Y

	a := math.Sqrt(math.Max(0, 1-u1*u1))
	phi := 2 * math.Pi * u2

	u, v, w := HemisphereBasis(normal)

	return u.Multiply(a * math.Cos(phi)).
		Add(v.Multiply(a * math.Sin(phi))).
		Add(w.Multiply(u1)).
		Normalize()
}

// UniformHemispherePDF is the solid-angle density of SampleUniformHemisphere
func UniformHemispherePDF() float64 {
	return 1 / (2 * math.Pi)
}
