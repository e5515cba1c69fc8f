package scene

import (
	"github.com/spatialworks/maquette/engine/math"
)

// Camera provides the view and projection matrices the editor needs to
// turn pointer positions into world rays. Rendering itself happens
// elsewhere.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOV    float32 // radians
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(position, target math.Vec3, aspect float32) *Camera {
	return &Camera{
		Position: position,
		Target:   target,
		Up:       math.NewVec3Up(),
		FOV:      math.DegToRad(60),
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000.0,
	}
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.NewMat4LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.NewMat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// Forward returns the normalized view direction.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalized()
}
