package material

import (
	"math"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

// cosEpsilon bounds the tan(beta) denominator at grazing angles
const cosEpsilon = 1e-4

// OrenNayar models diffuse reflection from rough surfaces (Oren and Nayar, qualitative form).
// Sampling is the inherited uniform hemisphere.
type OrenNayar struct {
	Uniform

	// Roughness is the standard deviation of the microfacet slope angle.
	// When Resample is set a fresh value is drawn on every Eval instead.
	Roughness float64
	Resample  bool
}

// NewOrenNayar creates a rough diffuse model that draws sigma uniformly from [0,1)
// on every evaluation
func NewOrenNayar() OrenNayar {
	return OrenNayar{Resample: true}
}

// NewOrenNayarWithRoughness creates a rough diffuse model with a fixed sigma
func NewOrenNayarWithRoughness(sigma float64) OrenNayar {
	return OrenNayar{Roughness: max(0, sigma)}
}

// Kind implements BRDF
func (OrenNayar) Kind() Kind { return KindOrenNayar }

// Coefficients returns the A and B terms for roughness sigma
func (OrenNayar) Coefficients(sigma float64) (a, b float64) {
	s := sigma * sigma
	a = 1.0 - s/(2.0*(s+0.33))
	b = 0.45 * s / (s + 0.09)
	return a, b
}

// Eval returns baseColor * (A + B * max(0, cos(phi_i - phi_o)) * tan(beta) * sin(alpha)) * 2
func (o OrenNayar) Eval(in core.Ray, hit HitResult, out core.Ray, sampler core.Sampler) core.Vec3 {
	sigma := o.Roughness
	if o.Resample {
		sigma = sampler.Get1D()
	}
	a, b := o.Coefficients(sigma)

	n := hit.Normal
	toViewer := in.Direction.Negate()
	cosI := math.Max(0, core.CosBetween(toViewer, n))
	cosO := math.Max(0, core.CosBetween(out.Direction, n))

	// alpha is the larger of the two polar angles, beta the smaller
	cosAlpha, cosBeta := cosO, cosI
	if cosO > cosI {
		cosAlpha, cosBeta = cosI, cosO
	}
	sinAlpha := math.Sqrt(1 - cosAlpha*cosAlpha)
	tanBeta := math.Sqrt(1-cosBeta*cosBeta) / math.Max(cosBeta, cosEpsilon)

	maxCos := math.Max(0, core.CosBetween(tangentPart(toViewer, n), tangentPart(out.Direction, n)))

	diff := a + b*maxCos*tanBeta*sinAlpha
	return hit.baseColor().Multiply(diff * uniformLambertNorm)
}

// tangentPart removes the component of d along the unit normal n
func tangentPart(d, n core.Vec3) core.Vec3 {
	return d.Subtract(n.Multiply(d.Dot(n)))
}
