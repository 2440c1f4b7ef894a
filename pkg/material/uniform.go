package material

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

// Uniform is the fallback reflectance model: directions are spread uniformly over
// the hemisphere and the evaluation returns the unweighted base color.
// Diffuse and OrenNayar embed it for their sampling.
type Uniform struct{}

// Kind implements BRDF
func (Uniform) Kind() Kind { return KindUniform }

// Sample draws u1, u2 from the sampler and returns a ray from the hit point in the
// hemisphere around the normal
func (Uniform) Sample(in core.Ray, hit HitResult, sampler core.Sampler) core.Ray {
	direction := core.SampleUniformHemisphere(hit.Normal, sampler.Get2D())
	return core.NewRay(hit.Point, direction)
}

// Eval returns the material base color
func (Uniform) Eval(in core.Ray, hit HitResult, out core.Ray, sampler core.Sampler) core.Vec3 {
	return hit.baseColor()
}
