package pgs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// buildChainScene returns n+1 unit-mass bodies in a chain of n contact
// joints, each body given a small falling velocity (cycling 0.1, 0.2, 0.3)
// so that most joints start productive; every third joint has its bodies
// already separating — used by the kernel-equivalence tests below.
func buildChainScene(n int) ([]RigidBody, []ContactJoint) {
	bodies := make([]RigidBody, n+1)
	for i := range bodies {
		bodies[i] = RigidBody{
			InvMass:       1,
			InvInertia:    1,
			Velocity:      Vec2{X: 0, Y: -0.1 * float32(i%3+1)},
			LastIteration: -1,
		}
	}

	joints := make([]ContactJoint, n)
	for i := range joints {
		joints[i] = ContactJoint{
			Body1Index: uint32(i),
			Body2Index: uint32(i + 1),
			NormalLimiter: Limiter{
				NormalProjector1: Vec2{X: 0, Y: -1},
				NormalProjector2: Vec2{X: 0, Y: 1},
				CompMass1Linear:  Vec2{X: 0, Y: -1},
				CompMass2Linear:  Vec2{X: 0, Y: 1},
				CompInvMass:      0.5,
			},
			FrictionLimiter: Limiter{
				NormalProjector1: Vec2{X: -1, Y: 0},
				NormalProjector2: Vec2{X: 1, Y: 0},
				CompMass1Linear:  Vec2{X: -1, Y: 0},
				CompMass2Linear:  Vec2{X: 1, Y: 0},
				CompInvMass:      0.5,
			},
		}
	}
	return bodies, joints
}

func runAoS(n int) []RigidBody {
	bodies, joints := buildChainScene(n)
	cfg := DefaultConfig()
	s := &Solver{Bodies: bodies, ContactJoints: joints, Cfg: cfg}
	s.SolveJointsAoS()
	return s.Bodies
}

func runSoA(n, width int) []RigidBody {
	bodies, joints := buildChainScene(n)
	cfg := DefaultConfig()
	s := &Solver{Bodies: bodies, ContactJoints: joints, Cfg: cfg}
	s.solveSoA(width, width == 16)
	return s.Bodies
}

// S5: AoS scalar and SoA N=1 must match bit-for-bit; wider SIMD widths
// must match within a small relative tolerance.
func TestKernelEquivalence_ScalarExact(t *testing.T) {
	aos := runAoS(6)
	soa1 := runSoA(6, 1)
	require.Equal(t, len(aos), len(soa1))
	for i := range aos {
		require.Equal(t, aos[i].Velocity, soa1[i].Velocity, "body %d", i)
	}
}

func TestKernelEquivalence_WideWithinTolerance(t *testing.T) {
	aos := runAoS(37)

	for _, width := range []int{4, 8, 16} {
		wide := runSoA(37, width)
		diff := cmp.Diff(aos, wide, cmpopts.EquateApprox(1e-5, 0))
		if diff != "" {
			t.Errorf("width %d diverged from scalar baseline beyond tolerance:\n%s", width, diff)
		}
	}
}

// S6: a joint count (37) not a multiple of the lane width exercises the
// scalar tail path; the end state must equal the all-scalar baseline.
func TestKernelEquivalence_TailHandling(t *testing.T) {
	aos := runAoS(37)
	soa8 := runSoA(37, 8)

	diff := cmp.Diff(aos, soa8, cmpopts.EquateApprox(0, 1e-5))
	require.Empty(t, diff)
}
