package pgs

// SolveJointsImpulsesAoS runs one velocity-iteration pass over
// joints[start:end] directly against bodies (no SoA repacking), applying
// the normal-then-friction impulse update described in the design notes'
// per-joint algorithm. It returns whether any joint produced an impulse
// delta exceeding cfg.ProductiveImpulse, the early-exit signal the driver
// loop checks.
//
// This is the baseline the SoA kernels are required to match bit-for-bit
// (scalar) or within tolerance (SIMD) — see kernel_soa_test.go.
func SolveJointsImpulsesAoS(bodies []RigidBody, joints []ContactJoint, start, end int, iterationIndex int, cfg Config) bool {
	productive := false

	for i := start; i < end; i++ {
		j := &joints[i]
		b1 := &bodies[j.Body1Index]
		b2 := &bodies[j.Body2Index]

		if b1.LastIteration < int32(iterationIndex-1) && b2.LastIteration < int32(iterationIndex-1) {
			continue
		}

		deltaN := solveNormalImpulse(&j.NormalLimiter, b1, b2)
		deltaF := solveFrictionImpulse(&j.FrictionLimiter, &j.NormalLimiter, b1, b2, cfg.FrictionCoefficient)

		if abs32(deltaN) > cfg.ProductiveImpulse || abs32(deltaF) > cfg.ProductiveImpulse {
			b1.LastIteration = int32(iterationIndex)
			b2.LastIteration = int32(iterationIndex)
			productive = true
		}
	}

	return productive
}

// SolveJointsDisplacementAoS is SolveJointsImpulsesAoS's split-impulse
// counterpart: it runs only the normal-limiter update, against the
// displacing velocity/angular-velocity fields and
// LastDisplacementIteration, per spec.md §4.3 ("Displacement kernel is
// step-3-only").
func SolveJointsDisplacementAoS(bodies []RigidBody, joints []ContactJoint, start, end int, iterationIndex int, cfg Config) bool {
	productive := false

	for i := start; i < end; i++ {
		j := &joints[i]
		b1 := &bodies[j.Body1Index]
		b2 := &bodies[j.Body2Index]

		if b1.LastDisplacementIteration < int32(iterationIndex-1) && b2.LastDisplacementIteration < int32(iterationIndex-1) {
			continue
		}

		delta := solveDisplacingImpulse(&j.NormalLimiter, b1, b2)

		if abs32(delta) > cfg.ProductiveImpulse {
			b1.LastDisplacementIteration = int32(iterationIndex)
			b2.LastDisplacementIteration = int32(iterationIndex)
			productive = true
		}
	}

	return productive
}

func solveNormalImpulse(l *Limiter, b1, b2 *RigidBody) float32 {
	dv := l.solveVelocity(b1.Velocity, b1.AngularVelocity, b2.Velocity, b2.AngularVelocity)
	delta := dv * l.CompInvMass

	if l.AccumulatedImpulse+delta < 0 {
		delta = -l.AccumulatedImpulse
	}
	l.AccumulatedImpulse += delta

	l.applyImpulse(delta, &b1.Velocity, &b1.AngularVelocity, &b2.Velocity, &b2.AngularVelocity)
	return delta
}

func solveDisplacingImpulse(l *Limiter, b1, b2 *RigidBody) float32 {
	dv := l.solveDisplacingVelocity(b1.DisplacingVelocity, b1.DisplacingAngularVelocity,
		b2.DisplacingVelocity, b2.DisplacingAngularVelocity)
	delta := dv * l.CompInvMass

	if l.AccumulatedDisplacingImpulse+delta < 0 {
		delta = -l.AccumulatedDisplacingImpulse
	}
	l.AccumulatedDisplacingImpulse += delta

	l.applyImpulse(delta, &b1.DisplacingVelocity, &b1.DisplacingAngularVelocity,
		&b2.DisplacingVelocity, &b2.DisplacingAngularVelocity)
	return delta
}

// solveFrictionImpulse applies the Coulomb-clamped friction update, reading
// the normal limiter's just-updated AccumulatedImpulse as the cone radius.
func solveFrictionImpulse(friction, normal *Limiter, b1, b2 *RigidBody, mu float32) float32 {
	// friction.DstVelocity is always zero, so solveVelocity already returns
	// -(projected relative velocity) — exactly f_dv from the design notes.
	dv := friction.solveVelocity(b1.Velocity, b1.AngularVelocity, b2.Velocity, b2.AngularVelocity)
	delta := dv * friction.CompInvMass

	limit := normal.AccumulatedImpulse * mu
	newTotal := friction.AccumulatedImpulse + delta
	if newTotal > limit {
		newTotal = limit
	} else if newTotal < -limit {
		newTotal = -limit
	}
	delta = newTotal - friction.AccumulatedImpulse
	friction.AccumulatedImpulse = newTotal

	friction.applyImpulse(delta, &b1.Velocity, &b1.AngularVelocity, &b2.Velocity, &b2.AngularVelocity)
	return delta
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
