package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Normalize_Zero(t *testing.T) {
	v := Vec2{}
	assert.Equal(t, Vec2{}, v.Normalize())
}

func TestVec2_Perp(t *testing.T) {
	v := Vec2{X: 1, Y: 0}
	assert.Equal(t, Vec2{X: 0, Y: 1}, v.Perp())
}

func TestVec2_Cross_Dot(t *testing.T) {
	a := Vec2{X: 1, Y: 0}
	b := Vec2{X: 0, Y: 1}
	assert.Equal(t, float32(1), a.Cross(b))
	assert.Equal(t, float32(0), a.Dot(b))
}

func TestForAngle_UnitLength(t *testing.T) {
	v := ForAngle(0)
	assert.InDelta(t, 1, v.X, 1e-6)
	assert.InDelta(t, 0, v.Y, 1e-6)
}
