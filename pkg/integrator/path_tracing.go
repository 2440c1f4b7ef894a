package integrator

import (
	"math"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// shadowEpsilon offsets secondary rays to avoid self-intersection
const shadowEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing driven entirely by
// each material's BRDF Sample and Eval
type PathTracingIntegrator struct {
	config core.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config core.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce < pt.config.MaxDepth; bounce++ {
		hit, isHit := scene.Hit(ray, shadowEpsilon, math.Inf(1))
		if !isHit {
			color = color.Add(throughput.MultiplyVec(scene.GetBackground()))
			break
		}

		mat := hit.Material
		if mat == nil {
			break
		}
		color = color.Add(throughput.MultiplyVec(mat.Emission))

		scattered := mat.BRDF.Sample(ray, *hit, sampler)
		weight, ok := pt.bounceWeight(ray, *hit, scattered, sampler)
		if !ok {
			break
		}
		throughput = throughput.MultiplyVec(weight)

		if throughput.X <= 0 && throughput.Y <= 0 && throughput.Z <= 0 {
			break
		}

		shouldTerminate, rrCompensation := pt.applyRussianRoulette(bounce, throughput, sampler)
		if shouldTerminate {
			break
		}
		throughput = throughput.Multiply(rrCompensation)

		ray = scattered
	}

	return color
}

// bounceWeight evaluates the BRDF for one bounce and sanitizes the result.
// Negative channels are clamped to zero; a non-finite weight discards the rest of the path.
func (pt *PathTracingIntegrator) bounceWeight(in core.Ray, hit material.HitResult, out core.Ray, sampler core.Sampler) (core.Vec3, bool) {
	brdf := hit.Material.BRDF
	weight := brdf.Eval(in, hit, out, sampler)

	// Deterministic models leave the tint to the caller
	if brdf.Kind().IsDelta() {
		weight = weight.MultiplyVec(hit.Material.BaseColor)
	}

	if !weight.IsFinite() {
		return core.Vec3{}, false
	}
	return core.Vec3{X: math.Max(0, weight.X), Y: math.Max(0, weight.Y), Z: math.Max(0, weight.Z)}, true
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if pt.config.RussianRouletteMinBounces <= 0 || bounce < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	// Survival probability between 0.5 and 0.95 limits compensation to [1.05x, 2x]
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))

	if sampler.Get1D() > survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
