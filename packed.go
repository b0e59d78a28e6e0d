package pgs

// LimiterPacked is one row (normal or friction) of a ContactJointPacked
// block: the same fields Limiter carries, laid out as one slice per field
// instead of one struct per joint, so a lane-width load pulls N joints'
// worth of a single field contiguously.
type LimiterPacked struct {
	NormalProjector1X, NormalProjector1Y []float32
	NormalProjector2X, NormalProjector2Y []float32
	AngularProjector1, AngularProjector2 []float32

	CompMass1LinearX, CompMass1LinearY []float32
	CompMass2LinearX, CompMass2LinearY []float32
	CompMass1Angular, CompMass2Angular []float32
	CompInvMass                       []float32
	AccumulatedImpulse                []float32
}

// NormalLimiterPacked extends LimiterPacked with the split-impulse fields
// only the normal row carries.
type NormalLimiterPacked struct {
	LimiterPacked
	DstVelocity                  []float32
	DstDisplacingVelocity        []float32
	AccumulatedDisplacingImpulse []float32
}

// ContactJointPacked is a block of up to Width joints expressed as parallel
// arrays — the SoA rearrangement spec.md calls ContactJointPacked<N>. Go's
// generics can't parametrize a fixed-length array by Width, so each field
// is a slice of length Width instead of a [N]float32; Width is carried
// explicitly so kernels can assert on it and so a short final block (fewer
// joints than a full lane) is expressed by filling the remainder with inert
// zero-mass joints rather than changing the slice length.
type ContactJointPacked struct {
	Width int

	Body1Index []int32
	Body2Index []int32

	NormalLimiter   NormalLimiterPacked
	FrictionLimiter LimiterPacked
}

func newLimiterPacked(width int) LimiterPacked {
	return LimiterPacked{
		NormalProjector1X: make([]float32, width),
		NormalProjector1Y: make([]float32, width),
		NormalProjector2X: make([]float32, width),
		NormalProjector2Y: make([]float32, width),
		AngularProjector1: make([]float32, width),
		AngularProjector2: make([]float32, width),
		CompMass1LinearX:  make([]float32, width),
		CompMass1LinearY:  make([]float32, width),
		CompMass2LinearX:  make([]float32, width),
		CompMass2LinearY:  make([]float32, width),
		CompMass1Angular:  make([]float32, width),
		CompMass2Angular:  make([]float32, width),
		CompInvMass:       make([]float32, width),
		AccumulatedImpulse: make([]float32, width),
	}
}

func newContactJointPacked(width int) ContactJointPacked {
	return ContactJointPacked{
		Width:      width,
		Body1Index: make([]int32, width),
		Body2Index: make([]int32, width),
		NormalLimiter: NormalLimiterPacked{
			LimiterPacked:                newLimiterPacked(width),
			DstVelocity:                  make([]float32, width),
			DstDisplacingVelocity:        make([]float32, width),
			AccumulatedDisplacingImpulse: make([]float32, width),
		},
		FrictionLimiter: newLimiterPacked(width),
	}
}

func packLimiter(dst *LimiterPacked, lane int, l *Limiter) {
	dst.NormalProjector1X[lane] = l.NormalProjector1.X
	dst.NormalProjector1Y[lane] = l.NormalProjector1.Y
	dst.NormalProjector2X[lane] = l.NormalProjector2.X
	dst.NormalProjector2Y[lane] = l.NormalProjector2.Y
	dst.AngularProjector1[lane] = l.AngularProjector1
	dst.AngularProjector2[lane] = l.AngularProjector2
	dst.CompMass1LinearX[lane] = l.CompMass1Linear.X
	dst.CompMass1LinearY[lane] = l.CompMass1Linear.Y
	dst.CompMass2LinearX[lane] = l.CompMass2Linear.X
	dst.CompMass2LinearY[lane] = l.CompMass2Linear.Y
	dst.CompMass1Angular[lane] = l.CompMass1Angular
	dst.CompMass2Angular[lane] = l.CompMass2Angular
	dst.CompInvMass[lane] = l.CompInvMass
	dst.AccumulatedImpulse[lane] = l.AccumulatedImpulse
}

// SolvePrepareSoA resizes and refills the SoA working arrays for a solve at
// lane width N: body velocities are copied into fresh SolveBody arrays with
// lastIteration reset to -1, joints are reordered by SolvePrepareIndicesSoA,
// and the reordered joints are scattered into Width-sized ContactJointPacked
// blocks — one float32 slice per field, one lane per joint.
func SolvePrepareSoA(bodies []RigidBody, joints []ContactJoint, width int) (
	solveBodies, solveDisplacingBodies []SolveBody,
	blocks []ContactJointPacked,
	order []int,
	groupOffset int,
) {
	solveBodies = make([]SolveBody, len(bodies))
	solveDisplacingBodies = make([]SolveBody, len(bodies))
	for i := range bodies {
		solveBodies[i] = newSolveBody(&bodies[i])
		solveDisplacingBodies[i] = newDisplacingSolveBody(&bodies[i])
	}

	order, groupOffset = SolvePrepareIndicesSoA(joints, len(bodies), width)

	blockCount := (len(joints) + width - 1) / width
	blocks = make([]ContactJointPacked, blockCount)
	for b := range blocks {
		blocks[b] = newContactJointPacked(width)
	}

	for i, jointIdx := range order {
		block := i / width
		lane := i % width

		j := &joints[jointIdx]
		blocks[block].Body1Index[lane] = int32(j.Body1Index)
		blocks[block].Body2Index[lane] = int32(j.Body2Index)

		packLimiter(&blocks[block].NormalLimiter.LimiterPacked, lane, &j.NormalLimiter)
		blocks[block].NormalLimiter.DstVelocity[lane] = j.NormalLimiter.DstVelocity
		blocks[block].NormalLimiter.DstDisplacingVelocity[lane] = j.NormalLimiter.DstDisplacingVelocity
		blocks[block].NormalLimiter.AccumulatedDisplacingImpulse[lane] = j.NormalLimiter.AccumulatedDisplacingImpulse

		packLimiter(&blocks[block].FrictionLimiter, lane, &j.FrictionLimiter)
	}

	pgsAssert(groupOffset%width == 0, "groupOffset must be a multiple of the lane width")

	return solveBodies, solveDisplacingBodies, blocks, order, groupOffset
}

// SolveFinishSoA copies SolveBody velocities back into the RigidBody array
// and writes the three accumulated-impulse fields of each joint back from
// its packed block; projector/mass data is not written back, since it is
// re-derived by the next Refresh/PreStep. avgIterations is the diagnostic
// described in §4.4 of the design notes: the average, across joints, of
// max(lastIterA, lastIterB)+2, summed over the impulse and displacement
// passes and divided by joint count.
func SolveFinishSoA(
	bodies []RigidBody,
	solveBodies, solveDisplacingBodies []SolveBody,
	joints []ContactJoint,
	blocks []ContactJointPacked,
	order []int,
	width int,
) (avgIterations float32) {
	for i := range bodies {
		bodies[i].Velocity = solveBodies[i].Velocity
		bodies[i].AngularVelocity = solveBodies[i].AngularVelocity
		bodies[i].DisplacingVelocity = solveDisplacingBodies[i].Velocity
		bodies[i].DisplacingAngularVelocity = solveDisplacingBodies[i].AngularVelocity
		bodies[i].LastIteration = solveBodies[i].LastIteration
		bodies[i].LastDisplacementIteration = solveDisplacingBodies[i].LastIteration
	}

	for i, jointIdx := range order {
		block := i / width
		lane := i % width

		j := &joints[jointIdx]
		j.NormalLimiter.AccumulatedImpulse = blocks[block].NormalLimiter.AccumulatedImpulse[lane]
		j.NormalLimiter.AccumulatedDisplacingImpulse = blocks[block].NormalLimiter.AccumulatedDisplacingImpulse[lane]
		j.FrictionLimiter.AccumulatedImpulse = blocks[block].FrictionLimiter.AccumulatedImpulse[lane]
	}

	return averageIterations(bodies, joints)
}

// averageIterations implements the §4.4 diagnostic: the average, across
// joints, of max(lastIterA, lastIterB)+2 for the impulse pass plus the same
// for the displacement pass. It is a diagnostic only — callers ignore it
// except for telemetry, never to control the solver.
func averageIterations(bodies []RigidBody, joints []ContactJoint) float32 {
	if len(joints) == 0 {
		return 0
	}

	var sum int64
	for i := range joints {
		j := &joints[i]
		a := &bodies[j.Body1Index]
		b := &bodies[j.Body2Index]

		impulseIter := a.LastIteration
		if b.LastIteration > impulseIter {
			impulseIter = b.LastIteration
		}
		dispIter := a.LastDisplacementIteration
		if b.LastDisplacementIteration > dispIter {
			dispIter = b.LastDisplacementIteration
		}

		sum += int64(impulseIter) + 2 + int64(dispIter) + 2
	}

	return float32(sum) / float32(len(joints))
}
