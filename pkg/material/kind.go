package material

import (
	"fmt"
)

// Kind enumerates the closed set of reflectance models
type Kind int

const (
	kindInvalid Kind = iota
	KindUniform
	KindDiffuse
	KindSpecular
	KindOrenNayar
)

// ParseKind looks up a reflectance model by its name
func ParseKind(name string) (Kind, error) {
	switch name {
	case "uniform", "default":
		return KindUniform, nil
	case "diffuse", "lambertian":
		return KindDiffuse, nil
	case "specular", "mirror":
		return KindSpecular, nil
	case "orenNayar", "roughDiffuse":
		return KindOrenNayar, nil
	}
	return kindInvalid, fmt.Errorf("unknown brdf %q", name)
}

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindDiffuse:
		return "diffuse"
	case KindSpecular:
		return "specular"
	case KindOrenNayar:
		return "orenNayar"
	}
	return "invalid"
}

// IsDelta reports whether the model picks its direction deterministically
func (k Kind) IsDelta() bool {
	return k == KindSpecular
}

// New constructs the default instance of a reflectance model.
// Oren-Nayar instances resample their roughness on every evaluation.
func New(k Kind) (BRDF, error) {
	switch k {
	case KindUniform:
		return Uniform{}, nil
	case KindDiffuse:
		return NewDiffuse(), nil
	case KindSpecular:
		return NewSpecular(), nil
	case KindOrenNayar:
		return NewOrenNayar(), nil
	}
	return nil, fmt.Errorf("cannot construct brdf of kind %v", k)
}
