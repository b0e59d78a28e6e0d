// Package lane provides a portable, width-parametric SIMD lane abstraction.
//
// There is no intrinsic backing here — each Vec wraps a slice, the way
// go-highway's scalar fallback does — but the op set (load/store, the
// arithmetic ops, select, comparisons-to-mask, bitcast, and the indexed
// gather/scatter used for the SoA body layout) mirrors what a real
// N-wide SIMD register would expose. A width of 1 degenerates to scalar
// code; 4 and 8 cover SSE2/AVX2-equivalent batches; 16 is built by the
// caller as two independent 8-wide banks (see kernel_fma.go) rather than
// as a native width here.
package lane

import "math"

// Vec is an N-wide float32 lane, N = len(data).
type Vec struct {
	data []float32
}

// IVec is an N-wide int32 lane, used for bit-punned comparisons and for the
// lastIteration slot piggy-backed onto the SolveBody gather.
type IVec struct {
	data []int32
}

// Mask is an N-wide boolean lane produced by comparisons.
type Mask struct {
	bits []bool
}

// Width reports the lane width.
func (v Vec) Width() int  { return len(v.data) }
func (v IVec) Width() int { return len(v.data) }
func (m Mask) Width() int { return len(m.bits) }

// At returns the i'th lane element, mainly for tests.
func (v Vec) At(i int) float32 { return v.data[i] }
func (v IVec) At(i int) int32  { return v.data[i] }
func (m Mask) At(i int) bool   { return m.bits[i] }

// Zero returns an N-wide lane of zeroes.
func Zero(n int) Vec {
	return Vec{data: make([]float32, n)}
}

// Splat returns an N-wide lane with every element set to v.
func Splat(n int, v float32) Vec {
	data := make([]float32, n)
	for i := range data {
		data[i] = v
	}
	return Vec{data: data}
}

// Load reads the first n elements of src into a lane.
func Load(src []float32, n int) Vec {
	data := make([]float32, n)
	copy(data, src[:n])
	return Vec{data: data}
}

// Store writes v back into dst (len(dst) must be >= v.Width()).
func Store(v Vec, dst []float32) {
	copy(dst[:len(v.data)], v.data)
}

// LoadI reads the first n elements of src into an integer lane.
func LoadI(src []int32, n int) IVec {
	data := make([]int32, n)
	copy(data, src[:n])
	return IVec{data: data}
}

// StoreI writes v back into dst (len(dst) must be >= v.Width()).
func StoreI(v IVec, dst []int32) {
	copy(dst[:len(v.data)], v.data)
}

// LoadIndexed4 gathers four consecutive float32-sized words — velocity.x,
// velocity.y, angularVelocity, lastIteration-as-bits — from N bodies whose
// element (float32) offset into base is index[i]*stride, mirroring the 16-byte
// SolveBody gather the original SIMD kernels perform with a single
// 128-bit load. base must be a float32 view of the SolveBody array with
// stride == 4 (one float32 per SolveBody field).
func LoadIndexed4(base []float32, index []int32, stride int) (vx, vy, w Vec, lastIter IVec) {
	n := len(index)
	vx = Zero(n)
	vy = Zero(n)
	w = Zero(n)
	lastIter = IVec{data: make([]int32, n)}
	for i := 0; i < n; i++ {
		off := int(index[i]) * stride
		vx.data[i] = base[off+0]
		vy.data[i] = base[off+1]
		w.data[i] = base[off+2]
		lastIter.data[i] = int32(math.Float32bits(base[off+3]))
	}
	return
}

// StoreIndexed4 is the inverse scatter of LoadIndexed4.
func StoreIndexed4(base []float32, index []int32, stride int, vx, vy, w Vec, lastIter IVec) {
	n := len(index)
	for i := 0; i < n; i++ {
		off := int(index[i]) * stride
		base[off+0] = vx.data[i]
		base[off+1] = vy.data[i]
		base[off+2] = w.data[i]
		base[off+3] = math.Float32frombits(uint32(lastIter.data[i]))
	}
}

// Add, Sub, Mul are the elementwise arithmetic ops.
func Add(a, b Vec) Vec { return zipf(a, b, func(x, y float32) float32 { return x + y }) }
func Sub(a, b Vec) Vec { return zipf(a, b, func(x, y float32) float32 { return x - y }) }
func Mul(a, b Vec) Vec { return zipf(a, b, func(x, y float32) float32 { return x * y }) }

// FMA computes a*b + c in one call, matching the FMA-kernel's fused op.
func FMA(a, b, c Vec) Vec {
	out := Zero(a.Width())
	for i := range out.data {
		out.data[i] = a.data[i]*b.data[i] + c.data[i]
	}
	return out
}

// Max is the elementwise maximum.
func Max(a, b Vec) Vec {
	return zipf(a, b, func(x, y float32) float32 {
		if x > y {
			return x
		}
		return y
	})
}

// Min is the elementwise minimum.
func Min(a, b Vec) Vec {
	return zipf(a, b, func(x, y float32) float32 {
		if x < y {
			return x
		}
		return y
	})
}

// Abs is the elementwise absolute value.
func Abs(a Vec) Vec {
	out := Zero(a.Width())
	for i, x := range a.data {
		if x < 0 {
			out.data[i] = -x
		} else {
			out.data[i] = x
		}
	}
	return out
}

// FlipSign copies the sign of signs onto magnitude, lane by lane.
func FlipSign(magnitude, signs Vec) Vec {
	out := Zero(magnitude.Width())
	for i := range out.data {
		m := magnitude.data[i]
		if m < 0 {
			m = -m
		}
		if signs.data[i] < 0 {
			out.data[i] = -m
		} else {
			out.data[i] = m
		}
	}
	return out
}

// GreaterThan produces a mask of a[i] > b[i].
func GreaterThan(a, b Vec) Mask {
	bits := make([]bool, a.Width())
	for i := range bits {
		bits[i] = a.data[i] > b.data[i]
	}
	return Mask{bits: bits}
}

// GreaterThanI is the integer-lane form, used for the lastIteration activity check.
func GreaterThanI(a, b IVec) Mask {
	bits := make([]bool, len(a.data))
	for i := range bits {
		bits[i] = a.data[i] > b.data[i]
	}
	return Mask{bits: bits}
}

// Or combines two masks lane-wise.
func Or(a, b Mask) Mask {
	bits := make([]bool, len(a.bits))
	for i := range bits {
		bits[i] = a.bits[i] || b.bits[i]
	}
	return Mask{bits: bits}
}

// Any reports whether any lane of the mask is set.
func Any(m Mask) bool {
	for _, b := range m.bits {
		if b {
			return true
		}
	}
	return false
}

// Select picks a[i] where mask[i] is true, else b[i].
func Select(a, b Vec, mask Mask) Vec {
	out := Zero(a.Width())
	for i := range out.data {
		if mask.bits[i] {
			out.data[i] = a.data[i]
		} else {
			out.data[i] = b.data[i]
		}
	}
	return out
}

// SelectI is the integer-lane form of Select, used to update lastIteration.
func SelectI(a, b IVec, mask Mask) IVec {
	out := IVec{data: make([]int32, len(a.data))}
	for i := range out.data {
		if mask.bits[i] {
			out.data[i] = a.data[i]
		} else {
			out.data[i] = b.data[i]
		}
	}
	return out
}

// SplatI returns an N-wide int32 lane with every element set to v.
func SplatI(n int, v int32) IVec {
	data := make([]int32, n)
	for i := range data {
		data[i] = v
	}
	return IVec{data: data}
}

// Bitcast reinterprets a float32 lane's bits as int32, the way the original
// recasts lastIteration through a float slot in the packed SolveBody load.
func Bitcast(v Vec) IVec {
	out := IVec{data: make([]int32, v.Width())}
	for i, f := range v.data {
		out.data[i] = int32(math.Float32bits(f))
	}
	return out
}

// BitcastFromInt is the inverse of Bitcast.
func BitcastFromInt(v IVec) Vec {
	out := Zero(len(v.data))
	for i, b := range v.data {
		out.data[i] = math.Float32frombits(uint32(b))
	}
	return out
}

func zipf(a, b Vec, f func(x, y float32) float32) Vec {
	out := Zero(a.Width())
	for i := range out.data {
		out.data[i] = f(a.data[i], b.data[i])
	}
	return out
}
