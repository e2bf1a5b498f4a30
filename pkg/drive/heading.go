package drive

// Heading selects the heading-error source for Drive. The zero value
// steers along the gyro reference with no offset.
type Heading struct {
	fn     func() float64
	offset float64
}

// FixedHeading steers toward a constant offset from the gyro reference.
// A small positive offset drifts the robot slightly to the right.
func FixedHeading(offset float64) Heading {
	return Heading{offset: offset}
}

// HeadingFunc sources the heading error from fn on every iteration.
// FollowLine uses this to substitute reflectance error for gyro error;
// any other strategy can be plugged in the same way.
func HeadingFunc(fn func() float64) Heading {
	return Heading{fn: fn}
}

// errorFunc resolves the per-iteration error source against the gyro.
func (h Heading) errorFunc(gyro GyroSensor) func() float64 {
	if h.fn != nil {
		return h.fn
	}
	offset := h.offset
	return func() float64 { return offset - gyro.Angle() }
}
