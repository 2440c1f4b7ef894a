package integrator

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// Scene is the view of the world an integrator needs
type Scene interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitResult, bool)
	GetBackground() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray.
	// The sampler is owned by the caller and must not be shared between goroutines.
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
