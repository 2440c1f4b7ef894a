package scene

import (
	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/geometry"
	"github.com/df07/go-brdf-pathtracer/pkg/material"
)

// DefaultCameraConfig frames the rtweekend scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 2.5, 9),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 16.0 / 9.0,
	}
}

// NewRTWeekendScene builds the reference scene: a red diffuse ball, two large
// emissive spheres, a mirror ball, a yellow floor and two Oren-Nayar balls.
// Axes: X right, Y up, Z back (right-handed).
func NewRTWeekendScene(cameraOverrides ...CameraConfig) *Scene {
	cameraConfig := DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	noEmission := core.Vec3{}
	lightEmission := core.NewVec3(6, 6, 6)
	white := core.NewVec3(1, 1, 1)

	redDiffuse := material.NewMaterial(core.NewVec3(1.0, 0.1, 0.1), noEmission, material.NewDiffuse())
	light := material.NewMaterial(white, lightEmission, material.NewDiffuse())
	mirror := material.NewMaterial(white, noEmission, material.NewSpecular())
	floor := material.NewMaterial(core.NewVec3(0.3, 0.3, 0.0), noEmission, material.NewDiffuse())
	roughBlue := material.NewMaterial(core.NewVec3(0.1, 0.1, 1.0), noEmission, material.NewOrenNayar())
	roughGreen := material.NewMaterial(core.NewVec3(0.1, 1.0, 0.1), noEmission, material.NewOrenNayar())

	return &Scene{
		Name:       "rtweekend",
		Camera:     cameraConfig,
		Background: core.Vec3{},
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(1.5, 1.0, 0.0), 1.0, redDiffuse),
			geometry.NewSphere(core.NewVec3(6.0, 4.5, -4.0), 3.0, light),
			geometry.NewSphere(core.NewVec3(-6.0, 4.5, -4.0), 3.0, light),
			geometry.NewSphere(core.NewVec3(-2.0, 1.5, -1.0), 1.5, mirror),
			geometry.NewSphere(core.NewVec3(0.0, -1e5, 0.0), 1e5, floor),
			geometry.NewSphere(core.NewVec3(-0.5, 0.5, 0.0), 0.75, roughBlue),
			geometry.NewSphere(core.NewVec3(0.0, 0.5, 2.0), 0.5, roughGreen),
		},
	}
}
