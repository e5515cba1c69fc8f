package math

import "github.com/chewxy/math32"

// NewExtents3DEmpty returns an inverted box that any point expansion or
// merge will overwrite. An untouched empty box is not finite.
func NewExtents3DEmpty() Extents3D {
	inf := math32.Inf(1)
	return Extents3D{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

func NewExtents3D(min, max Vec3) Extents3D {
	return Extents3D{Min: min, Max: max}
}

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

func (e Extents3D) Size() Vec3 {
	return e.Max.Sub(e.Min)
}

// IsFinite reports whether the box has finite, non-inverted extents on
// every axis.
func (e Extents3D) IsFinite() bool {
	if !e.Min.IsFinite() || !e.Max.IsFinite() {
		return false
	}
	return e.Min.X <= e.Max.X && e.Min.Y <= e.Max.Y && e.Min.Z <= e.Max.Z
}

// ExpandPoint grows the box to contain p.
func (e Extents3D) ExpandPoint(p Vec3) Extents3D {
	e.Min.X = math32.Min(e.Min.X, p.X)
	e.Min.Y = math32.Min(e.Min.Y, p.Y)
	e.Min.Z = math32.Min(e.Min.Z, p.Z)
	e.Max.X = math32.Max(e.Max.X, p.X)
	e.Max.Y = math32.Max(e.Max.Y, p.Y)
	e.Max.Z = math32.Max(e.Max.Z, p.Z)
	return e
}

// Merge grows the box to contain other.
func (e Extents3D) Merge(other Extents3D) Extents3D {
	return e.ExpandPoint(other.Min).ExpandPoint(other.Max)
}

func (e Extents3D) Translate(v Vec3) Extents3D {
	return Extents3D{Min: e.Min.Add(v), Max: e.Max.Add(v)}
}

// Corners returns the eight corner points of the box.
func (e Extents3D) Corners() [8]Vec3 {
	return [8]Vec3{
		{e.Min.X, e.Min.Y, e.Min.Z},
		{e.Max.X, e.Min.Y, e.Min.Z},
		{e.Min.X, e.Max.Y, e.Min.Z},
		{e.Max.X, e.Max.Y, e.Min.Z},
		{e.Min.X, e.Min.Y, e.Max.Z},
		{e.Max.X, e.Min.Y, e.Max.Z},
		{e.Min.X, e.Max.Y, e.Max.Z},
		{e.Max.X, e.Max.Y, e.Max.Z},
	}
}

// Transform returns the axis-aligned box containing this box with m
// applied to all eight corners.
func (e Extents3D) Transform(m Mat4) Extents3D {
	out := NewExtents3DEmpty()
	for _, c := range e.Corners() {
		out = out.ExpandPoint(c.Transform(m))
	}
	return out
}
