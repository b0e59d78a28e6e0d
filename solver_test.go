package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S3: a handful of touching joints converge in well under the iteration
// budget; the AoS driver must stop early rather than spend the full budget,
// and its avgIterations diagnostic must be small relative to the budget.
func TestSolver_SolveJointsAoS_EarlyExit(t *testing.T) {
	bodies, joints := buildChainScene(4)
	cfg := DefaultConfig()
	cfg.ContactIterations = 20
	cfg.PenetrationIterations = 20

	s := &Solver{Bodies: bodies, ContactJoints: joints, Cfg: cfg}
	avg := s.SolveJointsAoS()

	require.NotZero(t, len(joints))
	assert.Less(t, avg, float32(cfg.ContactIterations+cfg.PenetrationIterations))
}

func TestSolver_RefreshAndPreStep(t *testing.T) {
	bodies := []RigidBody{
		{InvMass: 1, InvInertia: 1},
		{InvMass: 1, InvInertia: 1, Pos: Vec2{X: 0.8, Y: 0}},
	}
	joints := []ContactJoint{{
		Body1Index: 0,
		Body2Index: 1,
		Point: ContactPoint{
			Delta1: Vec2{X: 0.5, Y: 0},
			Delta2: Vec2{X: -0.5, Y: 0},
			Normal: Vec2{X: 1, Y: 0},
		},
	}}

	s := &Solver{Bodies: bodies, ContactJoints: joints, Cfg: DefaultConfig(), Dt: 1.0 / 60.0}
	s.RefreshJoints()
	s.PreStepJoints()

	assert.Greater(t, joints[0].NormalLimiter.CompInvMass, float32(0))
	assert.Greater(t, joints[0].NormalLimiter.DstDisplacingVelocity, float32(0))
}

func TestSolver_SolveJointsAuto_NonNegativeDiagnostic(t *testing.T) {
	bodies, joints := buildChainScene(10)
	s := &Solver{Bodies: bodies, ContactJoints: joints, Cfg: DefaultConfig()}
	avg := s.SolveJointsAuto()
	assert.GreaterOrEqual(t, avg, float32(0))
}
