package material

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

// uniformLambertNorm folds the 2π of the uniform hemisphere estimator into the 1/π
// of the Lambertian BRDF
const uniformLambertNorm = 2.0

// Diffuse represents a perfectly diffuse (Lambertian) surface
type Diffuse struct {
	Uniform
}

// NewDiffuse creates a new Lambertian reflectance model
func NewDiffuse() Diffuse {
	return Diffuse{}
}

// Kind implements BRDF
func (Diffuse) Kind() Kind { return KindDiffuse }

// Eval returns baseColor * cos(theta_out) * 2.
// The cosine is not clamped; directions below the surface yield a negative weight
// that the caller must discard.
func (d Diffuse) Eval(in core.Ray, hit HitResult, out core.Ray, sampler core.Sampler) core.Vec3 {
	cosTheta := core.CosBetween(out.Direction, hit.Normal)
	return hit.baseColor().Multiply(cosTheta * uniformLambertNorm)
}
