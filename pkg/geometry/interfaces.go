package geometry

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitResult, bool)
}

// ClosestHit returns the nearest intersection among shapes in (tMin, tMax)
func ClosestHit(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.HitResult, bool) {
	var closest *material.HitResult
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}
