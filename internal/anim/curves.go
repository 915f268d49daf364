package anim

import "math"

// Curve maps linear progress t in [0, 1] to eased progress. Curves used by
// the widgets must satisfy Curve(0) == 0 and Curve(1) == 1.
type Curve func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 {
	return clampUnit(t)
}

// Power2Out decelerates with a cubic falloff.
func Power2Out(t float64) float64 {
	t = clampUnit(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Power3Out decelerates with a quartic falloff. It is the default count-up
// and entrance curve.
func Power3Out(t float64) float64 {
	t = clampUnit(t)
	inv := 1 - t
	return 1 - inv*inv*inv*inv
}

// Power1InOut is a quadratic symmetric ease used for back-and-forth motion.
func Power1InOut(t float64) float64 {
	t = clampUnit(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Power2InOut starts and ends slowly.
func Power2InOut(t float64) float64 {
	t = clampUnit(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Overshoot is the springy slot transition of the rotating cards, CSS
// cubic-bezier(0.34, 1.56, 0.64, 1). It passes 1 before settling.
var Overshoot = CubicBezier(0.34, 1.56, 0.64, 1)

// CubicBezier returns the easing of CSS cubic-bezier(x1, y1, x2, y2). The
// control points x1 and x2 must lie in [0, 1]; y values may leave it.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	// Polynomial coefficients of B(u) = ((a*u + b)*u + c)*u per axis.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	x := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	y := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slope := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		for range 8 {
			e := x(u) - t
			if math.Abs(e) < 1e-7 {
				return y(u)
			}
			d := slope(u)
			if math.Abs(d) < 1e-6 {
				break
			}
			u -= e / d
		}

		lo, hi := 0.0, 1.0
		u = t
		for hi-lo > 1e-7 {
			if x(u) < t {
				lo = u
			} else {
				hi = u
			}
			u = (lo + hi) / 2
		}
		return y(u)
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
