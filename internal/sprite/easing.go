package sprite

import "math"

// lerp — линейная интерполяция между a и b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic — плавное ускорение и замедление
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// pingPong переводит растущую фазу в 0..1..0 со сглаживанием на концах.
func pingPong(phase float64) float64 {
	_, frac := math.Modf(phase)
	if frac < 0 {
		frac++
	}
	if frac < 0.5 {
		return easeInOutCubic(frac * 2)
	}
	return easeInOutCubic((1 - frac) * 2)
}
