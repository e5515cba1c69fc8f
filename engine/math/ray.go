package math

import "github.com/chewxy/math32"

const rayEpsilon = 1e-6

func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalized()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}

// IntersectPlane returns the point where the ray crosses the plane.
// Rays parallel to the plane or pointing away from it miss.
func (r Ray) IntersectPlane(p Plane) (Vec3, bool) {
	denom := r.Direction.Dot(p.Normal)
	if math32.Abs(denom) < rayEpsilon {
		return Vec3{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}

// IntersectExtents performs a slab test against an axis-aligned box and
// returns the entry distance on hit. A ray starting inside the box hits
// with a negative entry distance clamped to zero.
func (r Ray) IntersectExtents(e Extents3D) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Component(axis)
		d := r.Direction.Component(axis)
		lo := e.Min.Component(axis)
		hi := e.Max.Component(axis)

		if math32.Abs(d) < rayEpsilon {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return math32.Max(tmin, 0), true
}

// DistanceToPoint returns the shortest distance from the ray to p,
// treating the ray as a half-line.
func (r Ray) DistanceToPoint(p Vec3) float32 {
	t := p.Sub(r.Origin).Dot(r.Direction)
	if t < 0 {
		t = 0
	}
	return r.At(t).Distance(p)
}
