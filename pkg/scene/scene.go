package scene

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/geometry"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	Camera     CameraConfig
	Background core.Vec3        // Radiance returned by rays that escape
	Shapes     []geometry.Shape // Objects in the scene
}

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// MergeCameraConfig overlays non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Hit returns the closest intersection of ray with the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitResult, bool) {
	return geometry.ClosestHit(s.Shapes, ray, tMin, tMax)
}

// GetBackground returns the escape radiance
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// CountByKind tallies shapes by the reflectance model of their material
func (s *Scene) CountByKind() map[material.Kind]int {
	counts := make(map[material.Kind]int)
	for _, shape := range s.Shapes {
		var mat *material.Material
		switch sh := shape.(type) {
		case *geometry.Sphere:
			mat = sh.Material
		case *geometry.Plane:
			mat = sh.Material
		}
		if mat != nil && mat.BRDF != nil {
			counts[mat.BRDF.Kind()]++
		}
	}
	return counts
}
