// Package geometry converts between chassis travel distances and motor
// rotation angles.
package geometry

import "math"

// DefaultWheelDiameter is the stock drive wheel, in centimeters.
const DefaultWheelDiameter = 6.24

// Wheel describes one drive wheel. The zero value behaves like the stock
// wheel.
type Wheel struct {
	Diameter float64 // centimeters
}

// NewWheel returns a wheel of the given diameter, falling back to the
// stock diameter for non-positive values.
func NewWheel(diameter float64) Wheel {
	if diameter <= 0 {
		diameter = DefaultWheelDiameter
	}
	return Wheel{Diameter: diameter}
}

// Circumference returns the rolling circumference in centimeters.
func (w Wheel) Circumference() float64 {
	return w.diameter() * math.Pi
}

// DistanceToDegrees converts a chassis distance in centimeters to the
// motor rotation in degrees that covers it. Sign is preserved.
func (w Wheel) DistanceToDegrees(cm float64) float64 {
	return cm / w.Circumference() * 360
}

// DegreesToDistance is the inverse of DistanceToDegrees.
func (w Wheel) DegreesToDistance(deg float64) float64 {
	return deg / 360 * w.Circumference()
}

func (w Wheel) diameter() float64 {
	if w.Diameter <= 0 {
		return DefaultWheelDiameter
	}
	return w.Diameter
}
