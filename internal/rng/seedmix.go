package rng

import (
	"encoding/binary"
	"math"

	"github.com/OneOfOne/xxhash"
)

// MaxMixValues is the number of slots the game's seed helper hashes.
const MaxMixValues = 5

const mixModulus = 2147483647.0

// Mix folds up to five values into one generator seed.
//
// Legacy mode (pre-1.6 saves) sums the values modulo 2^31-1. Modern mode truncates each value,
// zero-pads to five int32 slots and hashes their little-endian bytes with xxHash32 (seed 0),
// reinterpreting the unsigned hash as a signed int32.
func Mix(legacy bool, values ...float64) int32 {
	if len(values) > MaxMixValues {
		panic("rng: Mix takes at most 5 values")
	}
	if legacy {
		var sum float64
		for _, v := range values {
			sum += math.Mod(v, mixModulus)
		}
		return saturateInt32(sum)
	}
	var buf [MaxMixValues * 4]byte
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(saturateInt32(math.Mod(v, mixModulus))))
	}
	return int32(xxhash.Checksum32S(buf[:], 0))
}

// saturateInt32 truncates toward zero and clamps to the int32 range (NaN becomes 0).
func saturateInt32(v float64) int32 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
