package stack

import "math"

// CameraOffset returns how far the viewport has scrolled up to keep the
// tower top at mid-height. It is zero until the top crosses the middle
// of the viewport and then grows 1:1 with the tower.
func CameraOffset(topY, viewportH float64) float64 {
	return math.Max(0, viewportH/2-topY)
}
