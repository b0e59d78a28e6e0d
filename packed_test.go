package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Property 5: SolvePrepareSoA immediately followed by SolveFinishSoA with
// no solve iterations in between leaves body velocities and joint
// accumulated impulses unchanged.
func TestPrepareFinishSoA_Idempotent(t *testing.T) {
	bodies, joints := buildChainScene(5)
	joints[2].NormalLimiter.AccumulatedImpulse = 0.37
	joints[2].FrictionLimiter.AccumulatedImpulse = -0.05

	wantVelocities := make([]Vec2, len(bodies))
	for i, b := range bodies {
		wantVelocities[i] = b.Velocity
	}
	wantAccum := make([]float32, len(joints))
	for i, j := range joints {
		wantAccum[i] = j.NormalLimiter.AccumulatedImpulse
	}

	const width = 4
	solveBodies, solveDisp, blocks, order, groupOffset := SolvePrepareSoA(bodies, joints, width)
	require.Equal(t, 0, groupOffset%width)

	SolveFinishSoA(bodies, solveBodies, solveDisp, joints, blocks, order, width)

	for i := range bodies {
		assert.Equal(t, wantVelocities[i], bodies[i].Velocity, "body %d", i)
	}
	for i := range joints {
		assert.Equal(t, wantAccum[i], joints[i].NormalLimiter.AccumulatedImpulse, "joint %d", i)
	}
}

func TestSolvePrepareSoA_PacksAllJoints(t *testing.T) {
	bodies, joints := buildChainScene(9)
	const width = 4

	_, _, blocks, order, _ := SolvePrepareSoA(bodies, joints, width)

	require.Len(t, order, len(joints))
	wantBlocks := (len(joints) + width - 1) / width
	require.Len(t, blocks, wantBlocks)
	for _, b := range blocks {
		assert.Equal(t, width, b.Width)
	}
}
