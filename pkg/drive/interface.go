// Package drive implements the closed-loop motion core for a small
// differential-drive robot: gyro turns, distance runs with heading
// correction and stall detection, line following, stopping on a detected
// line, squaring the chassis against a line with two sensors, and
// sequencing those primitives into multi-leg paths.
//
// Hardware is consumed through small capability interfaces so the same
// loops run against real device drivers or the simulated rig in pkg/sim.
// Consumers should depend only on the interfaces they actually use.
package drive

// WheelMotor is one drive wheel.
type WheelMotor interface {
	// Run commands a signed speed in motor degrees per second.
	Run(speed float64)
	// Hold actively brakes to a standstill and keeps the position.
	Hold()
	// Brake stops without holding the position afterwards.
	Brake()
	// ResetAngle zeroes the rotation counter.
	ResetAngle()
	// Angle reports accumulated rotation in degrees since ResetAngle.
	Angle() float64
	// Stalled reports whether the wheel cannot keep up with the given
	// speed threshold.
	Stalled(speed float64) bool
}

// GyroSensor reports cumulative heading in degrees since the last Reset.
type GyroSensor interface {
	Reset()
	Angle() float64
}

// LightSensor is any sensor variant that can report surface reflectivity.
type LightSensor interface {
	Reflection() float64
}

// CalibrationSource provides the white and black reflectance references
// recorded by the calibration routine.
type CalibrationSource interface {
	CalibrationLog() (white, black float64)
}

// StopInput is a momentary boolean input such as a brick button.
type StopInput interface {
	Pressed() bool
}

// Status is a coarse state shown on the robot's indicator.
type Status int

const (
	StatusReady Status = iota
	StatusPaused
	StatusStopped
)

// StatusIndicator shows the current Status, typically as an LED color.
type StatusIndicator interface {
	SetStatus(Status)
}

// Mover issues straight legs and in-place turns. The path runner depends
// only on this.
type Mover interface {
	Drive(distance float64, opts ...Option)
	Turn(angle float64, opts ...Option)
}

// StateSink receives live motion snapshots, e.g. for the telemetry
// dashboard. Publish is called from inside control loops and must not
// block.
type StateSink interface {
	Publish(State)
}

var _ Mover = (*Rover)(nil)
