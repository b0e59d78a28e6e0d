package pgs

import (
	"math"

	"github.com/kepleric/pgs/internal/lane"
)

// flattenSolveBodies produces the flat float32 view LoadIndexed4/
// StoreIndexed4 gather from: four consecutive words per body
// (velocity.x, velocity.y, angularVelocity, lastIteration-as-bits),
// mirroring the single 128-bit SolveBody load the original SIMD kernels
// perform.
func flattenSolveBodies(bodies []SolveBody) []float32 {
	flat := make([]float32, len(bodies)*4)
	for i, b := range bodies {
		flat[i*4+0] = b.Velocity.X
		flat[i*4+1] = b.Velocity.Y
		flat[i*4+2] = b.AngularVelocity
		flat[i*4+3] = math.Float32frombits(uint32(b.LastIteration))
	}
	return flat
}

func unflattenSolveBodies(bodies []SolveBody, flat []float32) {
	for i := range bodies {
		bodies[i].Velocity.X = flat[i*4+0]
		bodies[i].Velocity.Y = flat[i*4+1]
		bodies[i].AngularVelocity = flat[i*4+2]
		bodies[i].LastIteration = int32(math.Float32bits(flat[i*4+3]))
	}
}

// limiterLoad bundles the lane-width load of one LimiterPacked row.
type limiterLoad struct {
	nP1x, nP1y, aP1 lane.Vec
	nP2x, nP2y, aP2 lane.Vec
	cm1x, cm1y, cm1a lane.Vec
	cm2x, cm2y, cm2a lane.Vec
	compInvMass      lane.Vec
	accumulated      lane.Vec
}

func loadLimiter(l *LimiterPacked, width int) limiterLoad {
	return limiterLoad{
		nP1x: lane.Load(l.NormalProjector1X, width),
		nP1y: lane.Load(l.NormalProjector1Y, width),
		aP1:  lane.Load(l.AngularProjector1, width),
		nP2x: lane.Load(l.NormalProjector2X, width),
		nP2y: lane.Load(l.NormalProjector2Y, width),
		aP2:  lane.Load(l.AngularProjector2, width),
		cm1x: lane.Load(l.CompMass1LinearX, width),
		cm1y: lane.Load(l.CompMass1LinearY, width),
		cm1a: lane.Load(l.CompMass1Angular, width),
		cm2x: lane.Load(l.CompMass2LinearX, width),
		cm2y: lane.Load(l.CompMass2LinearY, width),
		cm2a: lane.Load(l.CompMass2Angular, width),
		compInvMass: lane.Load(l.CompInvMass, width),
		accumulated: lane.Load(l.AccumulatedImpulse, width),
	}
}

// projectedVelocity computes nP1·vA + aP1·ωA + nP2·vB + aP2·ωB across the
// lane, the term every limiter's velocity error is built from. The sum is
// grouped the same way as Limiter.solveVelocity so that width 1 reproduces
// the AoS kernel bit for bit.
func (ll *limiterLoad) projectedVelocity(vAx, vAy, wA, vBx, vBy, wB lane.Vec) lane.Vec {
	acc := lane.FMA(ll.nP1y, vAy, lane.Mul(ll.nP1x, vAx))
	acc = lane.FMA(ll.aP1, wA, acc)
	dotB := lane.FMA(ll.nP2y, vBy, lane.Mul(ll.nP2x, vBx))
	acc = lane.Add(acc, dotB)
	acc = lane.FMA(ll.aP2, wB, acc)
	return acc
}

// applyDelta scatters delta·compMass back into the two bodies' lanes.
func (ll *limiterLoad) applyDelta(delta lane.Vec, vAx, vAy, wA, vBx, vBy, wB *lane.Vec) {
	*vAx = lane.FMA(ll.cm1x, delta, *vAx)
	*vAy = lane.FMA(ll.cm1y, delta, *vAy)
	*wA = lane.FMA(ll.cm1a, delta, *wA)
	*vBx = lane.FMA(ll.cm2x, delta, *vBx)
	*vBy = lane.FMA(ll.cm2y, delta, *vBy)
	*wB = lane.FMA(ll.cm2a, delta, *wB)
}

// SolveJointsImpulsesSoA runs one velocity-iteration pass over
// blocks[startBlock:endBlock] at the given lane width, gathering and
// scattering body state through flat (the flattened SolveBody array) via
// LoadIndexed4/StoreIndexed4. It returns whether any block was productive.
func SolveJointsImpulsesSoA(width int, blocks []ContactJointPacked, flat []float32, startBlock, endBlock int, iterationIndex int, cfg Config) bool {
	productiveAny := false
	iterThresh := lane.SplatI(width, int32(iterationIndex-2))
	mu := lane.Splat(width, cfg.FrictionCoefficient)
	threshold := lane.Splat(width, cfg.ProductiveImpulse)

	for bi := startBlock; bi < endBlock; bi++ {
		blk := &blocks[bi]

		vAx, vAy, wA, lastIterA := lane.LoadIndexed4(flat, blk.Body1Index, 4)
		vBx, vBy, wB, lastIterB := lane.LoadIndexed4(flat, blk.Body2Index, 4)

		activeMask := lane.Or(lane.GreaterThanI(lastIterA, iterThresh), lane.GreaterThanI(lastIterB, iterThresh))
		if !lane.Any(activeMask) {
			continue
		}

		normal := loadLimiter(&blk.NormalLimiter.LimiterPacked, width)
		dstVelocity := lane.Load(blk.NormalLimiter.DstVelocity, width)

		projN := normal.projectedVelocity(vAx, vAy, wA, vBx, vBy, wB)
		dv := lane.Sub(dstVelocity, projN)
		deltaN := lane.Mul(dv, normal.compInvMass)

		negAccum := lane.Sub(lane.Zero(width), normal.accumulated)
		deltaN = lane.Max(deltaN, negAccum)
		normal.accumulated = lane.Add(normal.accumulated, deltaN)
		normal.applyDelta(deltaN, &vAx, &vAy, &wA, &vBx, &vBy, &wB)
		lane.Store(normal.accumulated, blk.NormalLimiter.AccumulatedImpulse)

		friction := loadLimiter(&blk.FrictionLimiter, width)
		projF := friction.projectedVelocity(vAx, vAy, wA, vBx, vBy, wB)
		deltaF := lane.Mul(lane.Sub(lane.Zero(width), projF), friction.compInvMass)

		limit := lane.Mul(normal.accumulated, mu)
		newTotal := lane.Add(friction.accumulated, deltaF)
		newTotal = lane.Min(newTotal, limit)
		newTotal = lane.Max(newTotal, lane.Sub(lane.Zero(width), limit))
		deltaF = lane.Sub(newTotal, friction.accumulated)
		friction.accumulated = newTotal
		friction.applyDelta(deltaF, &vAx, &vAy, &wA, &vBx, &vBy, &wB)
		lane.Store(friction.accumulated, blk.FrictionLimiter.AccumulatedImpulse)

		productiveMask := lane.Or(lane.GreaterThan(lane.Abs(deltaN), threshold), lane.GreaterThan(lane.Abs(deltaF), threshold))
		newIter := lane.SplatI(width, int32(iterationIndex))
		lastIterA = lane.SelectI(newIter, lastIterA, productiveMask)
		lastIterB = lane.SelectI(newIter, lastIterB, productiveMask)
		if lane.Any(productiveMask) {
			productiveAny = true
		}

		lane.StoreIndexed4(flat, blk.Body1Index, 4, vAx, vAy, wA, lastIterA)
		lane.StoreIndexed4(flat, blk.Body2Index, 4, vBx, vBy, wB, lastIterB)
	}

	return productiveAny
}

// SolveJointsDisplacementSoA is the split-impulse counterpart of
// SolveJointsImpulsesSoA: normal-limiter only, against the displacing
// velocity lane and AccumulatedDisplacingImpulse.
func SolveJointsDisplacementSoA(width int, blocks []ContactJointPacked, flat []float32, startBlock, endBlock int, iterationIndex int, cfg Config) bool {
	productiveAny := false
	iterThresh := lane.SplatI(width, int32(iterationIndex-2))
	threshold := lane.Splat(width, cfg.ProductiveImpulse)

	for bi := startBlock; bi < endBlock; bi++ {
		blk := &blocks[bi]

		vAx, vAy, wA, lastIterA := lane.LoadIndexed4(flat, blk.Body1Index, 4)
		vBx, vBy, wB, lastIterB := lane.LoadIndexed4(flat, blk.Body2Index, 4)

		activeMask := lane.Or(lane.GreaterThanI(lastIterA, iterThresh), lane.GreaterThanI(lastIterB, iterThresh))
		if !lane.Any(activeMask) {
			continue
		}

		normal := loadLimiter(&blk.NormalLimiter.LimiterPacked, width)
		accumDisp := lane.Load(blk.NormalLimiter.AccumulatedDisplacingImpulse, width)
		dstDisp := lane.Load(blk.NormalLimiter.DstDisplacingVelocity, width)

		proj := normal.projectedVelocity(vAx, vAy, wA, vBx, vBy, wB)
		dv := lane.Sub(dstDisp, proj)
		delta := lane.Mul(dv, normal.compInvMass)

		negAccum := lane.Sub(lane.Zero(width), accumDisp)
		delta = lane.Max(delta, negAccum)
		accumDisp = lane.Add(accumDisp, delta)
		normal.applyDelta(delta, &vAx, &vAy, &wA, &vBx, &vBy, &wB)
		lane.Store(accumDisp, blk.NormalLimiter.AccumulatedDisplacingImpulse)

		productiveMask := lane.GreaterThan(lane.Abs(delta), threshold)
		newIter := lane.SplatI(width, int32(iterationIndex))
		lastIterA = lane.SelectI(newIter, lastIterA, productiveMask)
		lastIterB = lane.SelectI(newIter, lastIterB, productiveMask)
		if lane.Any(productiveMask) {
			productiveAny = true
		}

		lane.StoreIndexed4(flat, blk.Body1Index, 4, vAx, vAy, wA, lastIterA)
		lane.StoreIndexed4(flat, blk.Body2Index, 4, vBx, vBy, wB, lastIterB)
	}

	return productiveAny
}
