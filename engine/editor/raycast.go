package editor

import (
	"github.com/spatialworks/maquette/engine/math"
	"github.com/spatialworks/maquette/engine/scene"

	"github.com/chewxy/math32"
)

// ScreenToRay builds a world-space picking ray through a viewport
// pixel. x,y are in pixels with the origin at the top-left.
func ScreenToRay(cam *scene.Camera, x, y, width, height float32) math.Ray {
	forward := cam.Forward()
	right := forward.Cross(cam.Up).Normalized()
	up := right.Cross(forward).Normalized()

	tanHalf := math32.Tan(cam.FOV * 0.5)
	px := (2.0*x/width - 1.0) * tanHalf * cam.Aspect
	py := (1.0 - 2.0*y/height) * tanHalf

	dir := forward.Add(right.MulScalar(px)).Add(up.MulScalar(py))
	return math.NewRay(cam.Position, dir.Normalized())
}

// RaycastScene intersects the ray against every visible node's world
// box and returns the nearest hit.
func RaycastScene(g *scene.Graph, ray math.Ray) (scene.NodeID, float32, bool) {
	hit := scene.InvalidNodeID
	nearest := float32(math32.Inf(1))
	g.Each(func(id scene.NodeID) {
		n, ok := g.Node(id)
		if !ok || !n.Visible || !n.HasMesh {
			return
		}
		box := g.WorldBounds(id)
		if !box.IsFinite() {
			return
		}
		if t, ok := ray.IntersectExtents(box); ok && t < nearest {
			nearest = t
			hit = id
		}
	})
	return hit, nearest, hit != scene.InvalidNodeID
}

// PickHandle returns the handle whose world position lies within
// pickRadius of the ray. Among handles in radius the one nearest the
// ray origin wins, so a front handle occludes the ones behind it.
func PickHandle(hs *HandleSet, ray math.Ray, pickRadius float32) (Handle, bool) {
	var best Handle
	bestAlong := float32(math32.Inf(1))
	found := false
	for _, h := range hs.Handles() {
		p := hs.WorldPosition(h)
		if ray.DistanceToPoint(p) > pickRadius {
			continue
		}
		along := p.Sub(ray.Origin).Dot(ray.Direction)
		if along < bestAlong {
			bestAlong = along
			best = h
			found = true
		}
	}
	return best, found
}

// CameraFacingPlane is the drag plane: it passes through the grabbed
// point and faces the camera, fixed for the whole drag.
func CameraFacingPlane(cam *scene.Camera, through math.Vec3) math.Plane {
	normal := cam.Forward().MulScalar(-1)
	return math.Plane{Point: through, Normal: normal}
}
