package pgs

import "golang.org/x/sys/cpu"

// BestLaneWidth reports the widest lane SolveJointsAuto should pick for
// the running CPU: 16 when both AVX2 and FMA3 are available (the two-bank
// FMA kernel), 8 for AVX2 alone, 4 for SSE2 (present on effectively every
// amd64 CPU, and on arm64 NEON plays the same role), 1 otherwise.
//
// This only selects which portable-Go kernel runs — none of the kernels
// use real intrinsics, so the choice changes performance and
// reassociation noise, never correctness.
func BestLaneWidth() int {
	if cpu.X86.HasAVX2 && cpu.X86.HasFMA {
		return 16
	}
	if cpu.X86.HasAVX2 {
		return 8
	}
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD {
		return 4
	}
	return 1
}
