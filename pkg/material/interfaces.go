package material

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

// BRDF is the reflectance model attached to a material.
// Implementations hold no random state; every stochastic decision draws from the
// sampler passed in, so a single BRDF value can be shared by any number of goroutines.
type BRDF interface {
	// Kind identifies the variant for dispatch and serialization
	Kind() Kind

	// Sample picks an outgoing ray leaving the hit point
	Sample(in core.Ray, hit HitResult, sampler core.Sampler) core.Ray

	// Eval returns the radiance weight carried along out, already normalized for
	// the sampling distribution used by Sample
	Eval(in core.Ray, hit HitResult, out core.Ray, sampler core.Sampler) core.Vec3
}

// Material describes the surface appearance of an object
type Material struct {
	BaseColor core.Vec3 // Albedo, multiplied into the path throughput
	Emission  core.Vec3 // Emitted radiance, may exceed 1
	BRDF      BRDF
}

// NewMaterial creates a material; a nil BRDF falls back to uniform sampling
func NewMaterial(baseColor, emission core.Vec3, brdf BRDF) *Material {
	if brdf == nil {
		brdf = Uniform{}
	}
	return &Material{BaseColor: baseColor, Emission: emission, BRDF: brdf}
}

// IsEmissive reports whether the material emits any light
func (m *Material) IsEmissive() bool {
	return m.Emission.X > 0 || m.Emission.Y > 0 || m.Emission.Z > 0
}

// HitResult contains information about a ray-object intersection
type HitResult struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  *Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitResult) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// baseColor returns the hit material's albedo, or black if no material is attached
func (h HitResult) baseColor() core.Vec3 {
	if h.Material == nil {
		return core.Vec3{}
	}
	return h.Material.BaseColor
}
