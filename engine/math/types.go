package math

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Quaternion represents a rotational orientation.
type Quaternion Vec4

// Mat4 is a 4x4 matrix stored row-major. Points transform as row
// vectors (v' = v * M) and translation lives in the last row, so a
// child-to-world matrix is local.Mul(parentWorld).
type Mat4 struct {
	Data [16]float32
}

// Extents3D represents the axis-aligned extents of a 3D object.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Ray is a half-line in world space. Direction is expected to be
// normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Plane is the set of points p with Dot(p-Point, Normal) == 0.
type Plane struct {
	Point  Vec3
	Normal Vec3
}
