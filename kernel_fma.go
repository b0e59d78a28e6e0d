package pgs

// bankWidth is the lane width of each half of a width-16 FMA block. The
// coloring pass that produced a width-16 block already guarantees the
// 32 body indices across the whole block are pairwise distinct, so the
// two 8-wide banks below never touch a common body slot and can be
// processed independently — exactly the property that lets a real FMA
// kernel interleave the two banks' loads/computes/stores for instruction-
// level parallelism instead of running them as two serial 8-wide passes.
const bankWidth = 8

// bank slices a width-16 ContactJointPacked's fields into one 8-wide half
// in place — no copy, since every field is already a slice and Go slicing
// shares the backing array. This is what lets the two banks below write
// their AccumulatedImpulse/AccumulatedDisplacingImpulse results straight
// back into the parent block's storage.
func bank(blk *ContactJointPacked, lo, hi int) ContactJointPacked {
	l := sliceLimiter(&blk.NormalLimiter.LimiterPacked, lo, hi)
	return ContactJointPacked{
		Width:      hi - lo,
		Body1Index: blk.Body1Index[lo:hi],
		Body2Index: blk.Body2Index[lo:hi],
		NormalLimiter: NormalLimiterPacked{
			LimiterPacked:                l,
			DstVelocity:                  blk.NormalLimiter.DstVelocity[lo:hi],
			DstDisplacingVelocity:        blk.NormalLimiter.DstDisplacingVelocity[lo:hi],
			AccumulatedDisplacingImpulse: blk.NormalLimiter.AccumulatedDisplacingImpulse[lo:hi],
		},
		FrictionLimiter: sliceLimiter(&blk.FrictionLimiter, lo, hi),
	}
}

func sliceLimiter(l *LimiterPacked, lo, hi int) LimiterPacked {
	return LimiterPacked{
		NormalProjector1X:  l.NormalProjector1X[lo:hi],
		NormalProjector1Y:  l.NormalProjector1Y[lo:hi],
		NormalProjector2X:  l.NormalProjector2X[lo:hi],
		NormalProjector2Y:  l.NormalProjector2Y[lo:hi],
		AngularProjector1:  l.AngularProjector1[lo:hi],
		AngularProjector2:  l.AngularProjector2[lo:hi],
		CompMass1LinearX:   l.CompMass1LinearX[lo:hi],
		CompMass1LinearY:   l.CompMass1LinearY[lo:hi],
		CompMass2LinearX:   l.CompMass2LinearX[lo:hi],
		CompMass2LinearY:   l.CompMass2LinearY[lo:hi],
		CompMass1Angular:   l.CompMass1Angular[lo:hi],
		CompMass2Angular:   l.CompMass2Angular[lo:hi],
		CompInvMass:        l.CompInvMass[lo:hi],
		AccumulatedImpulse: l.AccumulatedImpulse[lo:hi],
	}
}

// SolveJointsImpulsesSoA16 is the two-bank FMA specialization of
// SolveJointsImpulsesSoA: each width-16 block is split into two width-8
// banks and both are run through the width-8 kernel. Real SIMD code would
// interleave the two banks' FMA sequences in one loop body for ILP; the
// portable lane package has no ports to schedule against, so the two
// banks are run back to back — numerically identical to true interleaving
// since the banks never share state.
func SolveJointsImpulsesSoA16(blocks []ContactJointPacked, flat []float32, startBlock, endBlock int, iterationIndex int, cfg Config) bool {
	productiveAny := false
	for bi := startBlock; bi < endBlock; bi++ {
		blk := &blocks[bi]
		banks := [2]ContactJointPacked{
			bank(blk, 0, bankWidth),
			bank(blk, bankWidth, 2*bankWidth),
		}
		if SolveJointsImpulsesSoA(bankWidth, banks[:], flat, 0, 1, iterationIndex, cfg) {
			productiveAny = true
		}
		if SolveJointsImpulsesSoA(bankWidth, banks[:], flat, 1, 2, iterationIndex, cfg) {
			productiveAny = true
		}
	}
	return productiveAny
}

// SolveJointsDisplacementSoA16 is SolveJointsImpulsesSoA16's displacement-
// pass counterpart.
func SolveJointsDisplacementSoA16(blocks []ContactJointPacked, flat []float32, startBlock, endBlock int, iterationIndex int, cfg Config) bool {
	productiveAny := false
	for bi := startBlock; bi < endBlock; bi++ {
		blk := &blocks[bi]
		banks := [2]ContactJointPacked{
			bank(blk, 0, bankWidth),
			bank(blk, bankWidth, 2*bankWidth),
		}
		if SolveJointsDisplacementSoA(bankWidth, banks[:], flat, 0, 1, iterationIndex, cfg) {
			productiveAny = true
		}
		if SolveJointsDisplacementSoA(bankWidth, banks[:], flat, 1, 2, iterationIndex, cfg) {
			productiveAny = true
		}
	}
	return productiveAny
}
