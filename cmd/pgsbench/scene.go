package main

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/kepleric/pgs"
)

// scene is a synthetic benchmark fixture: bodies laid out on a line with
// unit mass, and contact joints built directly (bypassing collision
// detection entirely) between near-neighbor bodies, the way the solver's
// own tests build fixtures without a full broadphase.
type scene struct {
	Bodies []pgs.RigidBody
	Joints []pgs.ContactJoint
}

func newScene(bodyCount int, jointsPerBody float64, seed int64) scene {
	rng := rand.New(rand.NewSource(seed))

	bodies := lo.Map(make([]struct{}, bodyCount), func(_ struct{}, i int) pgs.RigidBody {
		return pgs.RigidBody{
			Pos:        pgs.Vec2{X: float32(i), Y: 0},
			InvMass:    1,
			InvInertia: 1,
		}
	})

	jointCount := int(float64(bodyCount) * jointsPerBody)
	joints := lo.RepeatBy(jointCount, func(_ int) pgs.ContactJoint {
		i := rng.Intn(bodyCount)
		j := i + 1 + rng.Intn(3)
		if j >= bodyCount {
			j = (i + 1) % bodyCount
		}
		if i == j {
			j = (j + 1) % bodyCount
		}

		return pgs.ContactJoint{
			Body1Index: uint32(i),
			Body2Index: uint32(j),
			Point: pgs.ContactPoint{
				Delta1: pgs.Vec2{X: 0.5, Y: 0},
				Delta2: pgs.Vec2{X: -0.5, Y: 0},
				Normal: pgs.Vec2{X: 1, Y: 0},
			},
		}
	})

	return scene{Bodies: bodies, Joints: joints}
}
