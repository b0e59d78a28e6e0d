package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactJoint_Refresh_EqualMassSymmetric(t *testing.T) {
	b1 := &RigidBody{InvMass: 1, InvInertia: 1}
	b2 := &RigidBody{InvMass: 1, InvInertia: 1, Pos: Vec2{X: 1, Y: 0}}

	j := &ContactJoint{
		Point: ContactPoint{
			Delta1: Vec2{X: 0.5, Y: 0},
			Delta2: Vec2{X: -0.5, Y: 0},
			Normal: Vec2{X: 1, Y: 0},
		},
	}
	j.Refresh(b1, b2)

	assert.Greater(t, j.NormalLimiter.CompInvMass, float32(0))
	assert.Equal(t, Vec2{X: -1, Y: 0}, j.NormalLimiter.NormalProjector1)
	assert.Equal(t, Vec2{X: 1, Y: 0}, j.NormalLimiter.NormalProjector2)
}

func TestContactJoint_PreStep_PenetrationProducesBias(t *testing.T) {
	b1 := &RigidBody{InvMass: 1, InvInertia: 1}
	b2 := &RigidBody{InvMass: 1, InvInertia: 1, Pos: Vec2{X: 0.5, Y: 0}} // overlapping by 0.5

	j := &ContactJoint{
		Point: ContactPoint{
			Delta1: Vec2{X: 0.5, Y: 0},
			Delta2: Vec2{X: -0.5, Y: 0},
			Normal: Vec2{X: 1, Y: 0},
		},
	}
	j.Refresh(b1, b2)
	j.PreStep(b1, b2, 1.0/60.0, 0.01, 0.2, 0)

	assert.Greater(t, j.NormalLimiter.DstDisplacingVelocity, float32(0), "penetrating contact must bias toward separation")
	assert.Equal(t, float32(0), j.NormalLimiter.AccumulatedDisplacingImpulse)
}
