package pgs

// RigidBody is the AoS body record owned by the surrounding simulation.
// The solver reads and writes its fields by index; it never allocates or
// frees a RigidBody itself.
type RigidBody struct {
	Pos Vec2

	Velocity        Vec2
	AngularVelocity float32

	DisplacingVelocity        Vec2
	DisplacingAngularVelocity float32

	InvMass    float32
	InvInertia float32

	// LastIteration/LastDisplacementIteration are per-step scratch counters
	// reset to -1 at the start of a solve by Solver.resetIterationState (AoS)
	// or by newSolveBody/newDisplacingSolveBody (SoA).
	LastIteration             int32
	LastDisplacementIteration int32
}

// SolveBody is the SoA working copy the solver mutates during a solve. Its
// field order is a memory-layout contract: velocity at byte 0, angular
// velocity at byte 8, lastIteration at byte 12, so a 16-byte gather/scatter
// (internal/lane.LoadIndexed4/StoreIndexed4) can move all four fields for a
// body in one shot. flattenSolveBodies/unflattenSolveBodies in kernel_soa.go
// copy a []SolveBody into and back out of that flat float32 view; lastIteration travels
// through the float slot bit-for-bit via math.Float32frombits at that
// boundary — the struct itself stores it as a real int32, per the
// simplification SPEC_FULL takes from the design notes (a separate int32
// lane, not a punned float lane, except at the gather/scatter boundary that
// models the original's single-load gather).
type SolveBody struct {
	Velocity        Vec2
	AngularVelocity float32
	LastIteration   int32
}

func newSolveBody(b *RigidBody) SolveBody {
	return SolveBody{
		Velocity:        b.Velocity,
		AngularVelocity: b.AngularVelocity,
		LastIteration:   -1,
	}
}

func newDisplacingSolveBody(b *RigidBody) SolveBody {
	return SolveBody{
		Velocity:        b.DisplacingVelocity,
		AngularVelocity: b.DisplacingAngularVelocity,
		LastIteration:   -1,
	}
}
