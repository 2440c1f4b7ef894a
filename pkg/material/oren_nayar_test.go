package material

import (
	"math"
	"sync"
	"testing"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestOrenNayar_Coefficients(t *testing.T) {
	tests := []struct {
		sigma float64
		a, b  float64
	}{
		{0, 1, 0},
		{0.5, 1 - 0.25/1.16, 0.1125 / 0.34},
		{1, 1 - 1/2.66, 0.45 / 1.09},
	}

	for _, tt := range tests {
		a, b := OrenNayar{}.Coefficients(tt.sigma)
		if !scalar.EqualWithinAbs(a, tt.a, 1e-12) || !scalar.EqualWithinAbs(b, tt.b, 1e-12) {
			t.Errorf("sigma=%f: expected A=%f B=%f, got A=%f B=%f", tt.sigma, tt.a, tt.b, a, b)
		}
	}
}

func TestOrenNayar_ReducesToLambertianConstant(t *testing.T) {
	color := core.NewVec3(0.1, 0.1, 1.0)
	normal := core.NewVec3(0, 1, 0)
	hit := newTestHit(normal, color, NewOrenNayar())
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	sampler := core.NewSeededSampler(3)

	for _, sigma := range []float64{1e-2, 1e-3, 1e-4} {
		fixed := NewOrenNayarWithRoughness(sigma)
		resampled := NewOrenNayar()
		for i := 0; i < 100; i++ {
			out := fixed.Sample(rayIn, hit, sampler)
			expected := color.Multiply(2)

			got := fixed.Eval(rayIn, hit, out, sampler)
			tol := 100 * sigma * sigma
			if got.Subtract(expected).Length() > tol {
				t.Fatalf("sigma=%g: expected %v, got %v", sigma, expected, got)
			}

			got = resampled.Eval(rayIn, hit, out, core.NewSequenceSampler(sigma))
			if got.Subtract(expected).Length() > tol {
				t.Fatalf("resampled sigma=%g: expected %v, got %v", sigma, expected, got)
			}
		}
	}
}

func TestOrenNayar_KnownConfigurations(t *testing.T) {
	color := core.NewVec3(1, 1, 1)
	normal := core.NewVec3(0, 1, 0)
	sigma := 0.5
	model := NewOrenNayarWithRoughness(sigma)
	a, b := model.Coefficients(sigma)
	hit := newTestHit(normal, color, model)

	// toViewer is (1,1,0)/sqrt2
	rayIn := core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(-1, -1, 0).Normalize())

	tests := []struct {
		name     string
		outgoing core.Vec3
		diff     float64
	}{
		// Same azimuth: cos(phi) = 1, sin(alpha) = sqrt2/2, tan(beta) = 1
		{"Retro reflection", core.NewVec3(1, 1, 0).Normalize(), a + b*math.Sqrt2/2},
		// Opposite azimuth clamps the cosine term to zero
		{"Mirror azimuth", core.NewVec3(-1, 1, 0).Normalize(), a},
		// Perpendicular azimuth
		{"Perpendicular azimuth", core.NewVec3(0, 1, 1).Normalize(), a},
		// Outgoing along the normal has no tangent component
		{"Along normal", core.NewVec3(0, 1, 0), a},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := core.NewRay(hit.Point, tt.outgoing)
			got := model.Eval(rayIn, hit, out, core.NewSeededSampler(1))
			expected := color.Multiply(2 * tt.diff)
			if got.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestOrenNayar_GrazingAnglesStayFinite(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	hit := newTestHit(normal, core.NewVec3(0.1, 1, 0.1), NewOrenNayar())
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, -1, 0),
	}

	for _, sigma := range []float64{0, 0.5, 0.999} {
		model := NewOrenNayarWithRoughness(sigma)
		for _, inDir := range directions {
			for _, outDir := range directions {
				rayIn := core.NewRay(core.Vec3{}, inDir)
				out := core.NewRay(hit.Point, outDir)
				got := model.Eval(rayIn, hit, out, core.NewSeededSampler(1))
				if !got.IsFinite() {
					t.Errorf("sigma=%f in=%v out=%v produced non-finite %v", sigma, inDir, outDir, got)
				}
				if got.X < 0 || got.Y < 0 || got.Z < 0 {
					t.Errorf("sigma=%f in=%v out=%v produced negative %v", sigma, inDir, outDir, got)
				}
			}
		}
	}
}

func TestOrenNayar_ResampleConsumesOneDraw(t *testing.T) {
	hit := newTestHit(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), NewOrenNayar())
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	out := core.NewRay(hit.Point, core.NewVec3(0, 1, 0))

	sampler := core.NewSequenceSampler(0.3, 0.6)
	NewOrenNayar().Eval(rayIn, hit, out, sampler)
	if next := sampler.Get1D(); next != 0.6 {
		t.Errorf("Expected one roughness draw, next value was %f", next)
	}

	sampler = core.NewSequenceSampler(0.3, 0.6)
	NewOrenNayarWithRoughness(0.3).Eval(rayIn, hit, out, sampler)
	if next := sampler.Get1D(); next != 0.3 {
		t.Errorf("Fixed roughness should not draw, next value was %f", next)
	}
}

func TestBRDF_DeterministicGivenStream(t *testing.T) {
	models := []BRDF{Uniform{}, NewDiffuse(), NewSpecular(), NewOrenNayar(), NewOrenNayarWithRoughness(0.4)}
	normal := core.NewVec3(0.2, 0.9, -0.1).Normalize()
	rayIn := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0.3, -1, 0.2).Normalize())

	for _, model := range models {
		t.Run(model.Kind().String(), func(t *testing.T) {
			hit := newTestHit(normal, core.NewVec3(0.7, 0.4, 0.2), model)
			run := func() ([]core.Ray, []core.Vec3) {
				sampler := core.NewSeededSampler(2024)
				var rays []core.Ray
				var weights []core.Vec3
				for i := 0; i < 64; i++ {
					out := model.Sample(rayIn, hit, sampler)
					rays = append(rays, out)
					weights = append(weights, model.Eval(rayIn, hit, out, sampler))
				}
				return rays, weights
			}

			raysA, weightsA := run()
			raysB, weightsB := run()
			for i := range raysA {
				if raysA[i] != raysB[i] || weightsA[i] != weightsB[i] {
					t.Fatalf("Run %d diverged: %v/%v vs %v/%v", i, raysA[i], weightsA[i], raysB[i], weightsB[i])
				}
			}
		})
	}
}

func TestBRDF_SharedAcrossGoroutines(t *testing.T) {
	// Models are stateless; each goroutine brings its own sampler
	model := NewOrenNayar()
	hit := newTestHit(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), model)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.5, -1, 0).Normalize())

	var wg sync.WaitGroup
	results := make([]core.Vec3, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			sampler := core.NewSeededSampler(int64(g))
			sum := core.Vec3{}
			for i := 0; i < 1000; i++ {
				out := model.Sample(rayIn, hit, sampler)
				sum = sum.Add(model.Eval(rayIn, hit, out, sampler))
			}
			results[g] = sum
		}(g)
	}
	wg.Wait()

	for g, sum := range results {
		if !sum.IsFinite() || sum.X <= 0 {
			t.Errorf("Goroutine %d produced invalid sum %v", g, sum)
		}
	}
}
