package pgs

// FrictionCoefficient is the default Coulomb friction coefficient that
// DefaultConfig puts in Config.FrictionCoefficient; the kernels read the
// Config value, and ContactJoint has no per-joint coefficient.
const FrictionCoefficient float32 = 0.3

// ProductiveImpulseThreshold is the minimum |delta lambda| a solve iteration
// must produce for a body to be considered still "active"; bodies whose
// accumulated impulses stop changing by more than this are skipped in later
// iterations by the lastIteration bookkeeping.
const ProductiveImpulseThreshold float32 = 1e-4

// MaxContactPoints is the manifold capacity of the upstream contact
// generator (two points, the cap for polygon-polygon contacts). Each
// ContactJoint carries a single ContactPoint; the solver itself does not
// read this constant.
const MaxContactPoints = 2

// Config carries the tuning knobs the original expressed as compile-time
// constants. Solver methods read a Config instead of package globals so a
// caller can run multiple solvers with different tunings in one process.
type Config struct {
	ContactIterations     int
	PenetrationIterations int
	FrictionCoefficient   float32
	ProductiveImpulse     float32
	BiasFactor            float32
	Slop                  float32
}

// DefaultConfig mirrors the original's compile-time constants.
func DefaultConfig() Config {
	return Config{
		ContactIterations:     4,
		PenetrationIterations: 4,
		FrictionCoefficient:   FrictionCoefficient,
		ProductiveImpulse:     ProductiveImpulseThreshold,
		BiasFactor:            0.2,
		Slop:                  0.01,
	}
}
