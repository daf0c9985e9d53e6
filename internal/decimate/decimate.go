// Package decimate thins a feature sequence by zoom-dependent stride
// sampling. The thinning is uniform by index, not density aware; callers
// rely on the stride being deterministic for reproducible responses at a
// given zoom, so keep it exactly as is.
package decimate

import "github.com/quirky-blu/heatmap/internal/model"

// Zoom brackets and their per-partition feature targets.
const (
	lowZoomMax = 10 // below this: aim for ~100 features
	midZoomMax = 13 // below this: aim for ~500 features
	lowTarget  = 100
	midTarget  = 500
)

// Stride returns the sampling step for a sequence of length n at the given
// zoom. A stride of 1 keeps everything.
func Stride(n, zoom int) int {
	var target int
	switch {
	case zoom < lowZoomMax:
		target = lowTarget
	case zoom < midZoomMax:
		target = midTarget
	default:
		return 1
	}
	k := n / target
	if k < 1 {
		k = 1
	}
	return k
}

// Apply keeps the features at positions 0, k, 2k, ... in the original
// order, where k = Stride(len(features), zoom). Zoom >= 13 returns the
// input unchanged.
func Apply(features []model.Feature, zoom int) []model.Feature {
	k := Stride(len(features), zoom)
	if k <= 1 {
		return features
	}
	out := make([]model.Feature, 0, (len(features)+k-1)/k)
	for i := 0; i < len(features); i += k {
		out = append(out, features[i])
	}
	return out
}
