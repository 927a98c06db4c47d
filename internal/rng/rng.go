package rng

import "math"

// RandomSource abstract
type RandomSource interface {
	Float64() float64 // [0, 1)
}

const (
	mbig  = math.MaxInt32
	mseed = 161803398
)

// DotnetRNG reproduces the subtractive generator behind the game's System.Random
// (Numerical Recipes ran3 as shipped in .NET's compat implementation).
// Every draw mutates the state, so one instance must never be shared by two floors.
type DotnetRNG struct {
	state  [56]int32
	inext  int
	inextp int
}

// New seeds a generator the way new Random(seed) does.
func New(seed int32) *DotnetRNG {
	r := &DotnetRNG{}
	var subtraction int32
	if seed == math.MinInt32 {
		subtraction = math.MaxInt32
	} else {
		subtraction = seed
		if subtraction < 0 {
			subtraction = -subtraction
		}
	}
	mj := mseed - subtraction
	r.state[55] = mj
	mk := int32(1)
	ii := 0
	// slot 0 is never written: the range [1..55] is what the algorithm uses
	for i := 1; i < 55; i++ {
		ii = (ii + 21) % 55
		r.state[ii] = mk
		mk = mj - mk
		if mk < 0 {
			mk += mbig
		}
		mj = r.state[ii]
	}
	for k := 1; k < 5; k++ {
		for i := 1; i < 56; i++ {
			r.state[i] -= r.state[1+(i+30)%55]
			if r.state[i] < 0 {
				r.state[i] += mbig
			}
		}
	}
	r.inext = 0
	r.inextp = 21
	return r
}

// Next returns the next raw draw in [0, MaxInt32).
func (r *DotnetRNG) Next() int32 {
	r.inext = r.inext%55 + 1
	r.inextp = r.inextp%55 + 1
	v := r.state[r.inext] - r.state[r.inextp]
	if v == mbig {
		v--
	}
	if v < 0 {
		v += mbig
	}
	// the normalized value, not the raw difference, feeds later draws
	r.state[r.inext] = v
	return v
}

// Float64 scales one draw to [0, 1).
func (r *DotnetRNG) Float64() float64 {
	return float64(r.Next()) * (1.0 / float64(mbig))
}

// Intn returns floor(Float64() * n), truncating. n is exclusive.
func (r *DotnetRNG) Intn(n int32) int32 {
	return int32(r.Float64() * float64(n))
}

// Skip burns n draws whose values the caller does not need.
func (r *DotnetRNG) Skip(n int) {
	for i := 0; i < n; i++ {
		r.Next()
	}
}

// Clone forks an independent copy. Only use it to explore alternative futures on purpose.
func (r *DotnetRNG) Clone() *DotnetRNG {
	c := *r
	return &c
}
