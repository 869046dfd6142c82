package fusion

import "math"

const (
	// MidGray is the centre of the 8-bit domain; pixels averaging this are
	// the most trustworthy.
	MidGray = 127.5

	// SafeRange is how far (on the [0,255] scale) a pixel's channel average
	// may drift from MidGray and still be trusted at full weight.
	SafeRange = 96.0

	// WeightFloor is the weight given to a pixel at 0 or 255. It is never
	// zero, so a pixel always contributes something.
	WeightFloor = 0.01
)

// SafeRangeWeight maps a channel average to a confidence weight in
// [WeightFloor, 1.0]. Inside the safe range it is exactly 1.0; beyond it
// the weight falls linearly, reaching WeightFloor at the domain
// extremes.
func SafeRangeWeight(avg float64) float64 {
	diff := math.Abs(avg - MidGray)
	if diff <= SafeRange {
		return 1.0
	}
	return 1.0 - (1.0-WeightFloor)*(diff-SafeRange)/(MidGray-SafeRange)
}

// weightScale makes 0 and 255 map to a weight of 1/127.5 in the
// three-way weighting.
const weightScale = (1.0 - 1.0/MidGray) / MidGray

// TriangleWeight is the weighting used by FuseWeighted: a tent centred
// on MidGray, never reaching zero.
func TriangleWeight(avg float64) float64 {
	return 1.0 - weightScale*math.Abs(MidGray-avg)
}
