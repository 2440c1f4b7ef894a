package renderer

import (
	"math"

	"github.com/df07/go-brdf-pathtracer/pkg/core"
	"github.com/df07/go-brdf-pathtracer/pkg/scene"
)

// Camera generates primary rays for a pinhole camera
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width, height   int
}

// NewCamera creates a camera for an image of the given size.
// The image dimensions determine the aspect ratio.
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	aspectRatio := float64(width) / float64(height)
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	up := config.Up
	if up == (core.Vec3{}) {
		up = core.WorldUp
	}

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		width:           width,
		height:          height,
	}
}

// GetRay returns a jittered ray through pixel (i, j); row 0 is the top of the image
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(c.width)
	t := 1 - (float64(j)+jitter.Y)/float64(c.height)
	return c.rayAt(s, t)
}

// rayAt returns the ray through normalized screen coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) rayAt(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}
