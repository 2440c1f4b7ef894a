package material

import (
	"testing"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
)

func TestSpecular_SampleReflects(t *testing.T) {
	tests := []struct {
		name     string
		incoming core.Vec3
		normal   core.Vec3
		expected core.Vec3
	}{
		{
			name:     "45 degree reflection",
			incoming: core.NewVec3(1, -1, 0).Normalize(),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "Normal incidence",
			incoming: core.NewVec3(0, -1, 0),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(0, 1, 0),
		},
		{
			name:     "Grazing along the surface plane",
			incoming: core.NewVec3(1, 0, 0),
			normal:   core.NewVec3(0, 1, 0),
			expected: core.NewVec3(1, 0, 0),
		},
		{
			name:     "Oblique normal",
			incoming: core.NewVec3(0.3, -0.5, 0.8).Normalize(),
			normal:   core.NewVec3(0.1, 0.9, -0.2).Normalize(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := newTestHit(tt.normal, core.NewVec3(0.9, 0.9, 0.9), NewSpecular())
			rayIn := core.NewRay(core.NewVec3(-1, 1, 0), tt.incoming)

			out := NewSpecular().Sample(rayIn, hit, core.NewSeededSampler(42))

			expected := tt.expected
			if expected.Equals(core.Vec3{}) {
				d, n := tt.incoming, tt.normal
				expected = d.Subtract(n.Multiply(2 * d.Dot(n)))
			}
			if out.Direction.Subtract(expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", expected, out.Direction)
			}
			if !out.Origin.Equals(hit.Point) {
				t.Errorf("Reflected ray should start at hit point, got %v", out.Origin)
			}
		})
	}
}

func TestSpecular_SampleConsumesNoDraws(t *testing.T) {
	hit := newTestHit(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1), NewSpecular())
	sampler := core.NewSequenceSampler(0.1, 0.2)
	NewSpecular().Sample(core.NewRay(core.Vec3{}, core.NewVec3(1, -1, 0)), hit, sampler)
	if next := sampler.Get1D(); next != 0.1 {
		t.Errorf("Specular sampling should not draw, next value was %f", next)
	}
}

func TestSpecular_EvalIsWhite(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	sampler := core.NewSeededSampler(7)
	specular := NewSpecular()

	for i := 0; i < 50; i++ {
		normal := core.SampleUniformHemisphere(core.NewVec3(0, 1, 0), sampler.Get2D())
		color := core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
		hit := newTestHit(normal, color, specular)
		rayIn := core.NewRay(core.Vec3{}, core.NewVec3(sampler.Get1D()-0.5, -1, 0))
		out := core.NewRay(hit.Point, core.NewVec3(sampler.Get1D(), 1, sampler.Get1D()))

		if got := specular.Eval(rayIn, hit, out, sampler); !got.Equals(white) {
			t.Fatalf("Expected white, got %v", got)
		}
	}
}
