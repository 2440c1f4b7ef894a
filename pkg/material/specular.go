package material

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

// Specular represents an ideal lossless mirror
type Specular struct{}

// NewSpecular creates a new mirror reflectance model
func NewSpecular() Specular {
	return Specular{}
}

// Kind implements BRDF
func (Specular) Kind() Kind { return KindSpecular }

// Sample reflects the incoming direction about the normal; no random draw is consumed
func (Specular) Sample(in core.Ray, hit HitResult, sampler core.Sampler) core.Ray {
	return core.NewRay(hit.Point, core.Reflect(in.Direction, hit.Normal))
}

// Eval always returns white. Mirror tint comes from the material base color,
// which the integrator multiplies in.
func (Specular) Eval(in core.Ray, hit HitResult, out core.Ray, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 1, 1)
}
