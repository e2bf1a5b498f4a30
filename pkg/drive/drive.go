package drive

import (
	"math"

	"github.com/mbrobotics/go-rover/internal/log"
)

// driveTolerance is the terminal band in motor degrees. Drive exits
// brake-stopped, so the band absorbs the coasting remainder.
const driveTolerance = 20

// Drive moves the chassis the given signed distance in centimeters. The
// speed loop ramps the wheels up toward the halfway point and lets the
// PID decelerate them into the target, while a second loop corrects
// heading every iteration. Once past the halfway point the run ends when
// the target band is reached or either wheel stalls; a stall is treated
// the same as arrival.
//
// The heading source defaults to the gyro. WithHeading substitutes any
// other error source; FollowLine passes a reflectance error this way.
//
// Drive is a no-op once the emergency flag is down.
func (r *Rover) Drive(distance float64, opts ...Option) {
	if !r.Active() {
		return
	}
	cfg := newMotionConfig(opts)

	r.hw.Gyro.Reset()
	r.hw.Left.ResetAngle()
	r.hw.Right.ResetAngle()

	r.speedPID.Reset()
	r.speedPID.Settings(cfg.speedGains...)
	r.headingPID.Reset()
	r.headingPID.Settings(cfg.headingGains...)

	minSpeed := matchSign(cfg.minSpeed, distance)
	maxSpeed := matchSign(cfg.maxSpeed, distance)

	headingErr := cfg.heading.errorFunc(r.hw.Gyro)
	targetDeg := r.wheel.DistanceToDegrees(distance)

	log.Debug("drive start", "distance_cm", distance, "target_deg", targetDeg)

	movedEnough := false
	for r.Active() && !cfg.exit() {
		motorsDeg := (r.hw.Left.Angle() + r.hw.Right.Angle()) / 2

		var speedErr float64
		if math.Abs(motorsDeg) < math.Abs(targetDeg)/2 {
			speedErr = targetDeg - (targetDeg - motorsDeg)
		} else {
			speedErr = targetDeg - motorsDeg
			movedEnough = true
		}

		hErr := headingErr()
		headingOut := r.headingPID.Execute(hErr)
		speedOut := clampMagnitude(r.speedPID.Execute(speedErr), minSpeed, maxSpeed)

		// Heading correction goes to the right wheel only.
		r.hw.Left.Run(speedOut)
		r.hw.Right.Run(speedOut - headingOut)

		r.publish(State{
			Mode:       "drive",
			Target:     targetDeg,
			Measured:   motorsDeg,
			SpeedOut:   speedOut,
			HeadingErr: hErr,
			HeadingOut: headingOut,
			Left:       speedOut,
			Right:      speedOut - headingOut,
		})

		// Never end a run before the halfway point: a stall reported
		// while still accelerating would cut the leg short.
		if movedEnough {
			if math.Abs(motorsDeg) >= math.Abs(targetDeg)-driveTolerance ||
				r.hw.Left.Stalled(minSpeed) ||
				r.hw.Right.Stalled(minSpeed) {
				break
			}
		}
		r.pace()
	}

	r.hw.Left.Brake()
	r.hw.Right.Brake()

	log.Debug("drive done", "distance_cm", distance)
}

// matchSign returns |v| carrying the sign of ref.
func matchSign(v, ref float64) float64 {
	v = math.Abs(v)
	if ref < 0 {
		return -v
	}
	return v
}

// clampMagnitude keeps out inside the [min, max] magnitude band, keeping
// the band's travel sign when the raw output is too small.
func clampMagnitude(out, min, max float64) float64 {
	if math.Abs(out) < math.Abs(min) {
		return min
	}
	if math.Abs(out) > math.Abs(max) {
		return max
	}
	return out
}
