package pgs

// SolvePrepareIndicesSoA produces a permutation of [0, len(joints)) such
// that the first groupOffset indices form a greedily built prefix of
// groupSizeTarget-sized groups whose 2*N body indices are pairwise
// distinct within each group — the coloring invariant that lets the SIMD
// kernels update body state from every lane of a block without locking.
//
// The algorithm is greedy and single-pass: a body-tag array records the
// most recent group a body appears in, and a joint is admitted to the
// current group only if neither endpoint's tag has reached the current
// group's tag yet.
func SolvePrepareIndicesSoA(joints []ContactJoint, bodyCount, groupSizeTarget int) (order []int, groupOffset int) {
	n := len(joints)
	order = make([]int, 0, n)

	if groupSizeTarget <= 1 {
		for i := range joints {
			order = append(order, i)
		}
		return order, n
	}

	bodyTag := make([]int32, bodyCount)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	var tag int32
	admittedGroups := 0

	for len(remaining) >= groupSizeTarget {
		tag++
		admitted := 0

		i := 0
		for i < len(remaining) && admitted < groupSizeTarget {
			jointIdx := remaining[i]
			j := &joints[jointIdx]

			if bodyTag[j.Body1Index] < tag && bodyTag[j.Body2Index] < tag {
				bodyTag[j.Body1Index] = tag
				bodyTag[j.Body2Index] = tag
				order = append(order, jointIdx)
				admitted++

				last := len(remaining) - 1
				remaining[i] = remaining[last]
				remaining = remaining[:last]
				// Don't advance i: remaining[i] now holds the swapped-in
				// element and must itself be considered.
			} else {
				i++
			}
		}

		if admitted < groupSizeTarget {
			// This group never reached groupSizeTarget before the working
			// list ran dry. Its admitted joints stay in order (already
			// appended above) but don't count toward groupOffset — the
			// outer loop stops here, and whatever's left in remaining is
			// appended below as the coloring-incompatible tail.
			break
		}

		admittedGroups++
	}

	order = append(order, remaining...)
	// groupOffset only counts full groups, excluding any partial group
	// from the SIMD-safe prefix.
	groupOffset = admittedGroups * groupSizeTarget
	return order, groupOffset
}
