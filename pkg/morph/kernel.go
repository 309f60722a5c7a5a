// Package morph implements the two post-processing passes a flood fill may
// request: offset (dilate/erode) and feather (Gaussian blur), both run over
// the sparse alpha tile map the fill engine produces rather than over a
// dense image.
package morph

import "math"

// gaussianKernel1D generates a normalized 1D Gaussian kernel for the given
// sigma and its half-width radius.
func gaussianKernel1D(sigma float64) ([]float64, int) {
	if sigma <= 0 {
		return []float64{1.0}, 0
	}
	radius := int(math.Ceil(3 * sigma))
	sz := radius*2 + 1
	kern := make([]float64, sz)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * (float64(i) * float64(i)) / (sigma * sigma))
		kern[i+radius] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
