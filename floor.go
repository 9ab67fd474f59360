package fldraw

import "math"

// floorBias compensates binary floating-point error so that a product meant
// to land exactly on an integer (2 * 1.5) never rounds down to the integer
// below. Every scaled coordinate goes through it; adjacent shapes would
// otherwise disagree by one device pixel.
const floorBias = 0.001

// Saturation bounds for scaled coordinates. Device coordinates are kept in
// the int32 range so that sums of two of them never overflow an int on any
// platform.
const (
	maxDeviceCoord = math.MaxInt32
	minDeviceCoord = math.MinInt32
)

// Floor converts the logical coordinate x to device pixels under scale s:
// floor(x*s + 0.001), saturated to the int32 range.
func Floor(x int, s float64) int {
	return floorf(float64(x), s)
}

func floorf(x, s float64) int {
	v := math.Floor(x*s + floorBias)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxDeviceCoord:
		return maxDeviceCoord
	case v <= minDeviceCoord:
		return minDeviceCoord
	}
	return int(v)
}

// unscaleRound maps a device coordinate back to logical units under scale s.
// Rounding to nearest keeps Floor/unscaleRound round trips within one device
// pixel for every scale.
func unscaleRound(v int, s float64) int {
	return int(math.Round(float64(v) / s))
}

// clampCoord saturates v to the device coordinate range.
func clampCoord(v float64) float64 {
	switch {
	case v > maxDeviceCoord:
		return maxDeviceCoord
	case v < minDeviceCoord:
		return minDeviceCoord
	}
	return v
}
