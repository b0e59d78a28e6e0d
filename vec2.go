package pgs

import "math"

// Vec2 is a 2D vector, float32-backed to match the SolveBody/SoA layout
// the kernels gather and scatter directly.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Mult(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z-component magnitude of the 2D cross product.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Perp rotates v by +90 degrees, used to build lever arms from a
// body-relative contact offset.
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Rotate applies the rotation represented by other (a unit vector) to v.
func (v Vec2) Rotate(other Vec2) Vec2 {
	return Vec2{v.X*other.X - v.Y*other.Y, v.X*other.Y + v.Y*other.X}
}

func (v Vec2) LengthSq() float32 {
	return v.Dot(v)
}

func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Mult(1 / l)
}

// ForAngle returns the unit vector for angle a (radians), the form Rotate
// takes its rotation argument in.
func ForAngle(a float32) Vec2 {
	s, c := math.Sincos(float64(a))
	return Vec2{float32(c), float32(s)}
}
