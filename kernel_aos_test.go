package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalMassJoint(normal Vec2) ContactJoint {
	return ContactJoint{
		Body1Index: 0,
		Body2Index: 1,
		NormalLimiter: Limiter{
			NormalProjector1: normal.Neg(),
			NormalProjector2: normal,
			CompMass1Linear:  normal.Neg(),
			CompMass2Linear:  normal,
			CompInvMass:      0.5,
		},
	}
}

// S1 (adapted): two unit-mass bodies (the joint has no angular terms) with B falling into A at
// relative velocity 1 along the contact normal and no restitution. The
// velocity iteration loop must converge both bodies onto their common
// post-collision velocity and leave an early-exit (non-productive)
// iteration once converged, with a non-negative accumulated impulse.
func TestSolveJointsImpulsesAoS_RestingContact(t *testing.T) {
	bodies := []RigidBody{
		{InvMass: 1, InvInertia: 1, LastIteration: -1},
		{InvMass: 1, InvInertia: 1, Velocity: Vec2{X: 0, Y: -1}, LastIteration: -1},
	}
	joints := []ContactJoint{equalMassJoint(Vec2{X: 0, Y: 1})}
	cfg := DefaultConfig()

	iter := 0
	for ; iter < 10; iter++ {
		if !SolveJointsImpulsesAoS(bodies, joints, 0, len(joints), iter, cfg) {
			break
		}
	}

	require.Less(t, iter, 10, "expected early exit before exhausting the iteration budget")
	assert.InDelta(t, -0.5, bodies[0].Velocity.Y, 1e-5)
	assert.InDelta(t, -0.5, bodies[1].Velocity.Y, 1e-5)
	assert.InDelta(t, 0.5, joints[0].NormalLimiter.AccumulatedImpulse, 1e-5)
	assert.GreaterOrEqual(t, joints[0].NormalLimiter.AccumulatedImpulse, float32(0))
}

// S2: friction cone clamp. A preset normal impulse of 0.5 bounds the
// friction impulse to +/- 0.5*mu regardless of how large the tangential
// velocity error would otherwise drive it.
func TestSolveFrictionImpulse_ConeClamp(t *testing.T) {
	t_ := Vec2{X: 1, Y: 0}
	normal := &Limiter{AccumulatedImpulse: 0.5}
	friction := &Limiter{
		NormalProjector1: t_.Neg(),
		NormalProjector2: t_,
		CompMass1Linear:  t_.Neg(),
		CompMass2Linear:  t_,
		CompInvMass:      0.5,
	}

	b1 := &RigidBody{InvMass: 1, InvInertia: 1}
	b2 := &RigidBody{InvMass: 1, InvInertia: 1, Velocity: Vec2{X: 1, Y: 0}}

	solveFrictionImpulse(friction, normal, b1, b2, FrictionCoefficient)

	assert.InDelta(t, -0.15, friction.AccumulatedImpulse, 1e-6)
	assert.LessOrEqual(t, abs32(friction.AccumulatedImpulse), normal.AccumulatedImpulse*FrictionCoefficient+1e-6)
}

// Property 1: accumulatedImpulse never goes negative even when the target
// velocity error would otherwise pull it there (bodies already separating
// faster than the bias demands).
func TestSolveNormalImpulse_NonNegativeClamp(t *testing.T) {
	l := &Limiter{
		NormalProjector1: Vec2{X: 0, Y: -1},
		NormalProjector2: Vec2{X: 0, Y: 1},
		CompMass1Linear:  Vec2{X: 0, Y: -1},
		CompMass2Linear:  Vec2{X: 0, Y: 1},
		CompInvMass:      0.5,
		DstVelocity:      0,
	}
	b1 := &RigidBody{InvMass: 1, InvInertia: 1}
	b2 := &RigidBody{InvMass: 1, InvInertia: 1, Velocity: Vec2{X: 0, Y: 1}} // already separating

	solveNormalImpulse(l, b1, b2)

	assert.GreaterOrEqual(t, l.AccumulatedImpulse, float32(0))
}
