package drive

import (
	"math"

	"github.com/mbrobotics/go-rover/internal/log"
)

// Direction selects which way SquareLine approaches the line.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// squareNudgeCm is how far the chassis backs off the line between the two
// repetitions so the second pass re-crosses it.
const squareNudgeCm = 5

// SquareLine squares the chassis against a line: both wheels drive toward
// the line and each wheel holds the instant its own sensor crosses it, so
// the late side keeps turning the chassis until it sits parallel. The
// approach runs twice, with a small reverse nudge in between to cancel
// first-pass overshoot. The sign of speed is ignored; dir decides the
// direction.
//
// A color other than White or Black fails with ErrInvalidColor before
// anything moves. SquareLine is a no-op once the emergency flag is down.
func (r *Rover) SquareLine(dir Direction, speed float64, color LineColor) error {
	if !r.Active() {
		return nil
	}
	c, err := ParseLineColor(string(color))
	if err != nil {
		return err
	}

	speed = math.Abs(speed)
	if dir == Backward {
		speed = -speed
	}

	white, black := r.calib.CalibrationLog()

	var leftOnLine, rightOnLine func() bool
	switch c {
	case White:
		bound := white - squareWhiteMargin
		leftOnLine = func() bool { return r.hw.LeftLight.Reflection() > bound }
		rightOnLine = func() bool { return r.hw.RightLight.Reflection() > bound }
	case Black:
		bound := black + squareBlackMargin
		leftOnLine = func() bool { return r.hw.LeftLight.Reflection() < bound }
		rightOnLine = func() bool { return r.hw.RightLight.Reflection() < bound }
	}

	log.Debug("square line", "speed", speed, "color", c)

	for rep := 0; rep < 2; rep++ {
		r.hw.Left.Run(speed)
		r.hw.Right.Run(speed)

		leftDone, rightDone := false, false
		for r.Active() {
			if !leftDone && leftOnLine() {
				r.hw.Left.Hold()
				leftDone = true
			}
			if !rightDone && rightOnLine() {
				r.hw.Right.Hold()
				rightDone = true
			}
			if leftDone && rightDone {
				if rep == 0 {
					// Back off so the second pass re-crosses the line.
					r.Drive(matchSign(squareNudgeCm, -speed), WithSpeedKp(1))
				}
				break
			}
			r.pace()
		}
		if !r.Active() {
			break
		}
	}

	r.hw.Left.Hold()
	r.hw.Right.Hold()
	return nil
}
