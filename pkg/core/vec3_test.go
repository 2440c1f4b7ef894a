package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "45 degree reflection",
			incident: NewVec3(1, -1, 0).Normalize(),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "Normal incidence",
			incident: NewVec3(0, -1, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(0, 1, 0),
		},
		{
			name:     "Grazing along the surface plane",
			incident: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Tilted normal",
			incident: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 1, 1).Normalize(),
			expected: NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incident, tt.normal)
			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestCosBetween(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"Parallel", NewVec3(0, 2, 0), NewVec3(0, 5, 0), 1},
		{"Opposite", NewVec3(0, 1, 0), NewVec3(0, -3, 0), -1},
		{"Perpendicular", NewVec3(1, 0, 0), NewVec3(0, 1, 0), 0},
		{"45 degrees", NewVec3(1, 1, 0), NewVec3(0, 1, 0), math.Sqrt2 / 2},
		{"Zero vector", NewVec3(0, 0, 0), NewVec3(0, 1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosBetween(tt.a, tt.b)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-12) {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	if got := NewVec3(0, 0, 0).Normalize(); !got.Equals(Vec3{}) {
		t.Errorf("Normalizing zero vector should give zero, got %v", got)
	}
	if got := NewVec3(3, 0, 4).Normalize().Length(); !scalar.EqualWithinAbs(got, 1, 1e-12) {
		t.Errorf("Expected unit length, got %f", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Finite vector reported as non-finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component should be non-finite")
	}
	if NewVec3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component should be non-finite")
	}
}
