package pgs

import "math"

// ContactPoint is what the (out-of-scope) collision stage hands the solver:
// a contact point expressed as offsets from each body's position plus the
// shared contact normal. Mirrors ContactPoint in the upstream manifold
// representation, which stores delta1/delta2 as point-minus-body-position
// rather than world-space points.
type ContactPoint struct {
	Delta1 Vec2
	Delta2 Vec2
	Normal Vec2
}

// ContactJoint holds one contact constraint: the pair of body indices, the
// contact geometry it was built from, and the normal/friction Limiter rows
// the kernels iterate.
type ContactJoint struct {
	Body1Index uint32
	Body2Index uint32

	Point ContactPoint

	NormalLimiter   Limiter
	FrictionLimiter Limiter
}

// Refresh recomputes the projector and effective-mass coefficients of both
// limiter rows from the current body transforms, mass and inertia. It is
// pure per-joint work — RefreshJoints fans this out over internal/workqueue
// chunks without any cross-joint state.
func (j *ContactJoint) Refresh(b1, b2 *RigidBody) {
	n := j.Point.Normal
	t := n.Perp()

	r1 := j.Point.Delta1
	r2 := j.Point.Delta2

	j.NormalLimiter = buildLimiter(n, r1, r2, b1, b2)
	j.FrictionLimiter = buildLimiter(t, r1, r2, b1, b2)
}

// buildLimiter fills the projector/compMass fields of a Limiter for axis
// dir (the contact normal for the normal row, its perpendicular for the
// friction row), the same two rows arbiter.go's PreStep derives via
// k_scalar(a, b, r1, r2, axis) for nMass/tMass — expressed here with the
// effective-mass terms split per body so the SoA kernels can apply an
// impulse to each body independently without recomputing a Jacobian.
func buildLimiter(dir, r1, r2 Vec2, b1, b2 *RigidBody) Limiter {
	angular1 := r1.Cross(dir)
	angular2 := r2.Cross(dir)

	invMassSum := b1.InvMass + b2.InvMass +
		b1.InvInertia*angular1*angular1 +
		b2.InvInertia*angular2*angular2

	compInvMass := float32(0)
	if invMassSum > 0 {
		compInvMass = 1 / invMassSum
	}

	return Limiter{
		NormalProjector1:  dir.Neg(),
		AngularProjector1: -angular1,
		NormalProjector2:  dir,
		AngularProjector2: angular2,

		CompMass1Linear:  dir.Neg().Mult(b1.InvMass),
		CompMass1Angular: -angular1 * b1.InvInertia,
		CompMass2Linear:  dir.Mult(b2.InvMass),
		CompMass2Angular: angular2 * b2.InvInertia,

		CompInvMass: compInvMass,
	}
}

// PreStep sets the normal limiter's target velocities, mirroring
// Arbiter.PreStep's con.bias/con.bounce computation: a restitution term
// from the relative normal velocity for the velocity pass (DstVelocity),
// and a Baumgarte term from (dist + slop) for the displacement pass only
// (DstDisplacingVelocity). It also clears AccumulatedDisplacingImpulse.
func (j *ContactJoint) PreStep(b1, b2 *RigidBody, dt, slop, biasFactor, restitution float32) {
	n := j.Point.Normal

	bodyDelta := b2.Pos.Sub(b1.Pos)
	dist := j.Point.Delta2.Sub(j.Point.Delta1).Add(bodyDelta).Dot(n)

	bias := -biasFactor * float32(math.Min(0, float64(dist+slop))) / dt

	relVel := relativeNormalVelocity(b1, b2, j.Point.Delta1, j.Point.Delta2, n)

	// The velocity pass targets canceling the incoming approach velocity
	// (scaled by restitution); the displacement pass carries the
	// positional (Baumgarte) correction on its own separate split-impulse
	// velocity so it never feeds back into the real velocity the caller
	// integrates — the same separation Arbiter.ApplyImpulse keeps between
	// con.bias/jBias and con.bounce/jnAcc, just run as two distinct
	// iteration loops instead of one combined pass.
	j.NormalLimiter.DstVelocity = -relVel * restitution
	j.NormalLimiter.DstDisplacingVelocity = bias
	j.NormalLimiter.AccumulatedDisplacingImpulse = 0
}

func relativeNormalVelocity(b1, b2 *RigidBody, r1, r2, n Vec2) float32 {
	v1 := b1.Velocity.Add(r1.Perp().Mult(b1.AngularVelocity))
	v2 := b2.Velocity.Add(r2.Perp().Mult(b2.AngularVelocity))
	return v2.Sub(v1).Dot(n)
}
