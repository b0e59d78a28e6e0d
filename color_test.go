package pgs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainJoints(n int) []ContactJoint {
	joints := make([]ContactJoint, n)
	for i := range joints {
		joints[i] = ContactJoint{Body1Index: uint32(i), Body2Index: uint32(i + 1)}
	}
	return joints
}

// S4: a chain of 8 joints over 9 bodies, grouped at width 4, must produce
// a groupOffset that is a multiple of 4 whose prefix has pairwise-distinct
// endpoints per group of 4.
func TestSolvePrepareIndicesSoA_Chain(t *testing.T) {
	joints := chainJoints(8)

	order, groupOffset := SolvePrepareIndicesSoA(joints, 9, 4)

	require.Len(t, order, 8)
	assert.Equal(t, 0, groupOffset%4, "groupOffset must be a multiple of the lane width")
	assert.GreaterOrEqual(t, groupOffset, 4)

	for g := 0; g*4 < groupOffset; g++ {
		seen := map[uint32]bool{}
		for lane := 0; lane < 4; lane++ {
			j := &joints[order[g*4+lane]]
			assert.False(t, seen[j.Body1Index], "body %d reused within group", j.Body1Index)
			assert.False(t, seen[j.Body2Index], "body %d reused within group", j.Body2Index)
			seen[j.Body1Index] = true
			seen[j.Body2Index] = true
		}
	}
}

func TestSolvePrepareIndicesSoA_GroupSizeOne(t *testing.T) {
	joints := chainJoints(5)
	order, groupOffset := SolvePrepareIndicesSoA(joints, 6, 1)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 5, groupOffset)
}

func TestSolvePrepareIndicesSoA_TooFewForAnyGroup(t *testing.T) {
	joints := chainJoints(2)
	order, groupOffset := SolvePrepareIndicesSoA(joints, 3, 8)

	assert.Equal(t, 0, groupOffset)
	assert.ElementsMatch(t, []int{0, 1}, order)
}
