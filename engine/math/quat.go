package math

import "github.com/chewxy/math32"

func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

func (q Quaternion) Normal() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

func (q Quaternion) Normalize() Quaternion {
	n := q.Normal()
	if n == 0 {
		return NewQuatIdentity()
	}
	return Quaternion{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Conjugate negates the vector part, leaving w untouched.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quaternion) Inverse() Quaternion {
	return q.Conjugate().Normalize()
}

// Mul returns the Hamilton product q * other.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// RotateVec3 rotates v by q.
func (q Quaternion) RotateVec3(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2.0)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// ToMat4 returns the rotation matrix of q, laid out so that row-vector
// transforms (Vec3.Transform) rotate points by q.
func (q Quaternion) ToMat4() Mat4 {
	n := q.Normalize()

	out := NewMat4Identity()
	out.Data[0] = 1.0 - 2.0*n.Y*n.Y - 2.0*n.Z*n.Z
	out.Data[1] = 2.0*n.X*n.Y + 2.0*n.Z*n.W
	out.Data[2] = 2.0*n.X*n.Z - 2.0*n.Y*n.W

	out.Data[4] = 2.0*n.X*n.Y - 2.0*n.Z*n.W
	out.Data[5] = 1.0 - 2.0*n.X*n.X - 2.0*n.Z*n.Z
	out.Data[6] = 2.0*n.Y*n.Z + 2.0*n.X*n.W

	out.Data[8] = 2.0*n.X*n.Z + 2.0*n.Y*n.W
	out.Data[9] = 2.0*n.Y*n.Z - 2.0*n.X*n.W
	out.Data[10] = 1.0 - 2.0*n.X*n.X - 2.0*n.Y*n.Y
	return out
}

// NewQuatFromMat4 extracts a rotation from a pure rotation matrix in
// the same layout ToMat4 produces (Shepperd's method).
func NewQuatFromMat4(m Mat4) Quaternion {
	d := m.Data
	trace := d[0] + d[5] + d[10]

	var q Quaternion
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1.0) * 2.0
		q.W = 0.25 * s
		q.X = (d[6] - d[9]) / s
		q.Y = (d[8] - d[2]) / s
		q.Z = (d[1] - d[4]) / s
	case d[0] > d[5] && d[0] > d[10]:
		s := math32.Sqrt(1.0+d[0]-d[5]-d[10]) * 2.0
		q.W = (d[6] - d[9]) / s
		q.X = 0.25 * s
		q.Y = (d[4] + d[1]) / s
		q.Z = (d[8] + d[2]) / s
	case d[5] > d[10]:
		s := math32.Sqrt(1.0+d[5]-d[0]-d[10]) * 2.0
		q.W = (d[8] - d[2]) / s
		q.X = (d[4] + d[1]) / s
		q.Y = 0.25 * s
		q.Z = (d[9] + d[6]) / s
	default:
		s := math32.Sqrt(1.0+d[10]-d[0]-d[5]) * 2.0
		q.W = (d[1] - d[4]) / s
		q.X = (d[8] + d[2]) / s
		q.Y = (d[9] + d[6]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

// NewQuatFromAxisAngle creates a quaternion rotating by angle radians
// around axis.
func NewQuatFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := 0.5 * angle
	s := math32.Sin(halfAngle)
	c := math32.Cos(halfAngle)
	a := axis.Normalized()
	return Quaternion{s * a.X, s * a.Y, s * a.Z, c}
}

// Compare reports whether q and other represent orientations within
// tolerance of each other (q and -q compare equal).
func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	return math32.Abs(math32.Abs(q.Dot(other))-1.0) <= tolerance
}
