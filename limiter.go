package pgs

// Limiter is a single 1-DOF constraint row: a Jacobian-like projector for
// each body, the effective-mass terms that turn a velocity error into an
// impulse, and the impulse accumulated so far this step. Both the normal
// and friction rows of a ContactJoint are Limiters; the normal row also
// carries the split-impulse displacement fields.
type Limiter struct {
	NormalProjector1  Vec2
	AngularProjector1 float32
	NormalProjector2  Vec2
	AngularProjector2 float32

	CompMass1Linear  Vec2
	CompMass1Angular float32
	CompMass2Linear  Vec2
	CompMass2Angular float32

	CompInvMass float32

	AccumulatedImpulse float32

	// Normal-limiter-only fields. The friction Limiter leaves these zero.
	DstVelocity                  float32
	DstDisplacingVelocity        float32
	AccumulatedDisplacingImpulse float32
}

// solveVelocity returns the constraint-space velocity error, dstVelocity
// minus the projected relative velocity of the two bodies, the input to
// both the impulse and the friction update (§4.3 step 3/4 of the design
// notes this package implements).
func (l *Limiter) solveVelocity(vA Vec2, wA float32, vB Vec2, wB float32) float32 {
	return l.DstVelocity - (l.NormalProjector1.Dot(vA) + l.AngularProjector1*wA +
		l.NormalProjector2.Dot(vB) + l.AngularProjector2*wB)
}

func (l *Limiter) solveDisplacingVelocity(vA Vec2, wA float32, vB Vec2, wB float32) float32 {
	return l.DstDisplacingVelocity - (l.NormalProjector1.Dot(vA) + l.AngularProjector1*wA +
		l.NormalProjector2.Dot(vB) + l.AngularProjector2*wB)
}

// applyImpulse pushes a constraint-space impulse delta back into the two
// bodies' velocities via the row's effective-mass terms.
func (l *Limiter) applyImpulse(delta float32, vA *Vec2, wA *float32, vB *Vec2, wB *float32) {
	*vA = vA.Add(l.CompMass1Linear.Mult(delta))
	*wA += l.CompMass1Angular * delta
	*vB = vB.Add(l.CompMass2Linear.Mult(delta))
	*wB += l.CompMass2Angular * delta
}
