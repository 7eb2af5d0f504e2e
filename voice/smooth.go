package voice

// SmoothingRate is the default smoother rate in 1/seconds (10 ms time constant)
const SmoothingRate = 100

// Smoother is a one-pole exponential filter
type Smoother struct {
	Rate float32 // 1/seconds
	out  float32
}

// Process moves the output toward in by Rate*dt of the remaining distance
func (s *Smoother) Process(dt, in float32) float32 {
	k := s.Rate * dt
	if k > 1 || k <= 0 {
		k = 1
	}
	s.out += (in - s.out) * k
	return s.out
}

// Value returns the last output
func (s *Smoother) Value() float32 {
	return s.out
}

func (s *Smoother) Reset() {
	s.out = 0
}

func rescale(x, xMin, xMax, yMin, yMax float32) float32 {
	return yMin + (x-xMin)/(xMax-xMin)*(yMax-yMin)
}
