package pgs

import (
	"log/slog"

	"github.com/kepleric/pgs/internal/workqueue"
)

// Solver owns the joint list for one simulation step and drives the four
// behavioral kernel variants against a caller-owned body array. Bodies is
// a slice into the surrounding simulation's RigidBody storage; Solver
// mutates it in place but never reallocates or reorders it.
type Solver struct {
	Bodies        []RigidBody
	ContactJoints []ContactJoint

	Cfg Config

	// Dt and Restitution are per-step inputs to PreStepJoints; unlike Cfg
	// they vary step to step rather than being a solver-wide tuning.
	Dt          float32
	Restitution float32
}

// RefreshJoints recomputes every joint's limiter coefficients in parallel,
// chunked by internal/workqueue. ContactJoint.Refresh is pure per-joint
// work, so chunks can run in any order without synchronization.
func (s *Solver) RefreshJoints() {
	workqueue.Run(len(s.ContactJoints), func(start, end int) {
		for i := start; i < end; i++ {
			j := &s.ContactJoints[i]
			j.Refresh(&s.Bodies[j.Body1Index], &s.Bodies[j.Body2Index])
		}
	})
	slog.Debug("refreshed joints", "count", len(s.ContactJoints))
}

// PreStepJoints runs the sequential per-joint bias-velocity update.
func (s *Solver) PreStepJoints() {
	for i := range s.ContactJoints {
		j := &s.ContactJoints[i]
		j.PreStep(&s.Bodies[j.Body1Index], &s.Bodies[j.Body2Index], s.Dt, s.Cfg.Slop, s.Cfg.BiasFactor, s.Restitution)
	}
	slog.Debug("prestepped joints", "count", len(s.ContactJoints))
}

func (s *Solver) resetIterationState() {
	for i := range s.Bodies {
		s.Bodies[i].LastIteration = -1
		s.Bodies[i].LastDisplacementIteration = -1
		s.Bodies[i].DisplacingVelocity = Vec2{}
		s.Bodies[i].DisplacingAngularVelocity = 0
	}
}

// SolveJointsAoS runs the AoS scalar kernel: velocity iterations, then
// displacement iterations, each with the productivity early-exit, directly
// against s.Bodies with no SoA repacking.
func (s *Solver) SolveJointsAoS() float32 {
	s.resetIterationState()

	for iter := 0; iter < s.Cfg.ContactIterations; iter++ {
		if !SolveJointsImpulsesAoS(s.Bodies, s.ContactJoints, 0, len(s.ContactJoints), iter, s.Cfg) {
			break
		}
	}
	for iter := 0; iter < s.Cfg.PenetrationIterations; iter++ {
		if !SolveJointsDisplacementAoS(s.Bodies, s.ContactJoints, 0, len(s.ContactJoints), iter, s.Cfg) {
			break
		}
	}

	return averageIterations(s.Bodies, s.ContactJoints)
}

// SolveJointsSoA_Scalar is the SoA path at lane width 1 — bit-identical to
// SolveJointsAoS by construction (testable property 4), useful as the SoA
// pipeline's own scalar baseline.
func (s *Solver) SolveJointsSoA_Scalar() float32 {
	return s.solveSoA(1, false)
}

// SolveJointsSoA_SSE2 runs the SoA path at lane width 4.
func (s *Solver) SolveJointsSoA_SSE2() float32 {
	return s.solveSoA(4, false)
}

// SolveJointsSoA_AVX2 runs the SoA path at lane width 8.
func (s *Solver) SolveJointsSoA_AVX2() float32 {
	return s.solveSoA(8, false)
}

// SolveJointsSoA_FMA runs the SoA path at lane width 16, expressed as two
// independent width-8 banks per block (kernel_fma.go).
func (s *Solver) SolveJointsSoA_FMA() float32 {
	return s.solveSoA(16, true)
}

// SolveJointsAuto picks a lane width using CPU feature detection
// (dispatch.go) and runs that SoA variant. Because the kernels are
// portable Go rather than real intrinsics, the choice only changes which
// width is used, not correctness; SIMD reassociation tolerance (testable
// property 4) covers the resulting numerical differences between widths.
func (s *Solver) SolveJointsAuto() float32 {
	switch BestLaneWidth() {
	case 16:
		return s.SolveJointsSoA_FMA()
	case 8:
		return s.SolveJointsSoA_AVX2()
	case 4:
		return s.SolveJointsSoA_SSE2()
	default:
		return s.SolveJointsSoA_Scalar()
	}
}

func (s *Solver) solveSoA(width int, fma bool) float32 {
	s.resetIterationState()

	solveBodies, solveDisplacingBodies, blocks, order, groupOffset := SolvePrepareSoA(s.Bodies, s.ContactJoints, width)
	blockOffset := groupOffset / width

	flatImpulse := flattenSolveBodies(solveBodies)
	flatDisp := flattenSolveBodies(solveDisplacingBodies)

	impulseKernel := SolveJointsImpulsesSoA
	displacementKernel := SolveJointsDisplacementSoA
	if fma {
		impulseKernel = func(_ int, blocks []ContactJointPacked, flat []float32, start, end, iter int, cfg Config) bool {
			return SolveJointsImpulsesSoA16(blocks, flat, start, end, iter, cfg)
		}
		displacementKernel = func(_ int, blocks []ContactJointPacked, flat []float32, start, end, iter int, cfg Config) bool {
			return SolveJointsDisplacementSoA16(blocks, flat, start, end, iter, cfg)
		}
	}

	for iter := 0; iter < s.Cfg.ContactIterations; iter++ {
		simdProductive := impulseKernel(width, blocks, flatImpulse, 0, blockOffset, iter, s.Cfg)
		tailProductive := solveTailImpulse(blocks, width, order, groupOffset, flatImpulse, iter, s.Cfg)
		if !simdProductive && !tailProductive {
			break
		}
	}
	for iter := 0; iter < s.Cfg.PenetrationIterations; iter++ {
		simdProductive := displacementKernel(width, blocks, flatDisp, 0, blockOffset, iter, s.Cfg)
		tailProductive := solveTailDisplacement(blocks, width, order, groupOffset, flatDisp, iter, s.Cfg)
		if !simdProductive && !tailProductive {
			break
		}
	}

	unflattenSolveBodies(solveBodies, flatImpulse)
	unflattenSolveBodies(solveDisplacingBodies, flatDisp)

	return SolveFinishSoA(s.Bodies, solveBodies, solveDisplacingBodies, s.ContactJoints, blocks, order, width)
}

// solveTailImpulse runs the scalar (width-1) kernel over the
// coloring-incompatible tail order[groupOffset:], one joint at a time so
// each joint's read-modify-write to flat completes before the next joint
// (sharing a body with it) reads.
func solveTailImpulse(blocks []ContactJointPacked, width int, order []int, groupOffset int, flat []float32, iterationIndex int, cfg Config) bool {
	productive := false
	for i := groupOffset; i < len(order); i++ {
		block := i / width
		laneIdx := i % width
		view := bank(&blocks[block], laneIdx, laneIdx+1)
		if SolveJointsImpulsesSoA(1, []ContactJointPacked{view}, flat, 0, 1, iterationIndex, cfg) {
			productive = true
		}
	}
	return productive
}

func solveTailDisplacement(blocks []ContactJointPacked, width int, order []int, groupOffset int, flat []float32, iterationIndex int, cfg Config) bool {
	productive := false
	for i := groupOffset; i < len(order); i++ {
		block := i / width
		laneIdx := i % width
		view := bank(&blocks[block], laneIdx, laneIdx+1)
		if SolveJointsDisplacementSoA(1, []ContactJointPacked{view}, flat, 0, 1, iterationIndex, cfg) {
			productive = true
		}
	}
	return productive
}
