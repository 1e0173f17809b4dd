package frames

import "math"

// SyntheticSource draws a dark disc orbiting the centre of a white frame.
// It stands in for real assets in headless runs and demos.
func SyntheticSource(width, height, period int) SourceFunc {
	if period < 1 {
		period = 1
	}
	radius := float64(min(width, height)) / 5
	orbit := float64(min(width, height)) / 4

	return func(index int) (*Frame, error) {
		f := NewFrame(width, height, 0xff)
		angle := 2 * math.Pi * float64(index%period) / float64(period)
		cx := float64(width)/2 + orbit*math.Cos(angle)
		cy := float64(height)/2 + orbit*math.Sin(angle)

		x0 := max(0, int(cx-radius))
		x1 := min(width-1, int(cx+radius))
		y0 := max(0, int(cy-radius))
		y1 := min(height-1, int(cy+radius))
		r2 := radius * radius
		for y := y0; y <= y1; y++ {
			dy := float64(y) + 0.5 - cy
			for x := x0; x <= x1; x++ {
				dx := float64(x) + 0.5 - cx
				if dx*dx+dy*dy <= r2 {
					f.SetGray(x, y, 0)
				}
			}
		}
		return f, nil
	}
}

// NewSyntheticLoader resolves synthetic frames on worker goroutines.
func NewSyntheticLoader(width, height, period, numWorkers, queueSize int) *AsyncLoader {
	return NewAsyncLoader("synthetic", SyntheticSource(width, height, period), numWorkers, queueSize)
}
