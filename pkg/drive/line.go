package drive

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mbrobotics/go-rover/internal/log"
)

// LineColor selects which calibration bound a line predicate checks.
type LineColor string

const (
	White LineColor = "WHITE"
	Black LineColor = "BLACK"
)

// ErrInvalidColor is returned for a line color other than White or Black.
var ErrInvalidColor = errors.New("invalid line color")

// ParseLineColor normalizes a color token, case-insensitively.
func ParseLineColor(s string) (LineColor, error) {
	switch strings.ToUpper(s) {
	case string(White):
		return White, nil
	case string(Black):
		return Black, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// Margins applied to the calibration bounds so sensor noise near the line
// still trips the predicates.
const (
	lineWhiteMargin = 10
	lineBlackMargin = 10

	squareWhiteMargin = 10
	squareBlackMargin = 5
)

// FollowLine drives the given distance while steering along a line edge
// read by sensor: the heading error becomes the difference between the
// reflectance reading and the target value, so the drive loop itself does
// the line keeping. The target defaults to half the calibrated white
// value, the midpoint of the line edge.
//
// FollowLine is a no-op once the emergency flag is down.
func (r *Rover) FollowLine(sensor LightSensor, distance float64, opts ...Option) {
	if !r.Active() {
		return
	}
	cfg := newMotionConfig(opts)

	target := cfg.target
	if !cfg.targetSet {
		white, _ := r.calib.CalibrationLog()
		target = white / 2
	}

	r.lineSpeedPID.Reset()
	r.lineSpeedPID.Settings(cfg.speedGains...)
	r.lineHeadingPID.Reset()
	r.lineHeadingPID.Settings(cfg.headingGains...)

	skp, ski, skd := r.lineSpeedPID.Gains()
	hkp, hki, hkd := r.lineHeadingPID.Gains()

	log.Debug("follow line", "distance_cm", distance, "target", target)

	r.Drive(distance,
		WithSpeedKp(skp), WithSpeedKi(ski), WithSpeedKd(skd),
		WithHeadingKp(hkp), WithHeadingKi(hki), WithHeadingKd(hkd),
		WithSpeedRange(cfg.minSpeed, cfg.maxSpeed),
		WithHeading(HeadingFunc(func() float64 { return sensor.Reflection() - target })),
		WithExit(cfg.exit),
	)
}

// DriveToLine drives toward the target distance but stops as soon as the
// sensor crosses a line of the given color. Heading control stays on its
// default (gyro, or a caller-supplied WithHeading). The watched sensor
// defaults to the left one.
//
// A color other than White or Black fails with ErrInvalidColor before
// anything moves. DriveToLine is a no-op once the emergency flag is down.
func (r *Rover) DriveToLine(distance float64, color LineColor, opts ...Option) error {
	if !r.Active() {
		return nil
	}
	c, err := ParseLineColor(string(color))
	if err != nil {
		return err
	}
	cfg := newMotionConfig(opts)

	sensor := cfg.sensor
	if sensor == nil {
		sensor = r.hw.LeftLight
	}
	white, black := r.calib.CalibrationLog()

	var onLine ExitFunc
	switch c {
	case White:
		bound := white - lineWhiteMargin
		onLine = func() bool { return sensor.Reflection() > bound }
	case Black:
		bound := black + lineBlackMargin
		onLine = func() bool { return sensor.Reflection() < bound }
	}

	log.Debug("drive to line", "distance_cm", distance, "color", c)

	driveOpts := make([]Option, 0, len(opts)+1)
	driveOpts = append(driveOpts, opts...)
	driveOpts = append(driveOpts, WithExit(onLine))
	r.Drive(distance, driveOpts...)
	return nil
}
