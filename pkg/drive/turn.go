package drive

import "github.com/mbrobotics/go-rover/internal/log"

// turnTolerance is the terminal band in gyro degrees. The loop stops
// inside an open band rather than at exact zero to avoid chatter at
// convergence.
const turnTolerance = 2

// Turn rotates the chassis in place to the target angle in degrees,
// positive clockwise, using the gyro as feedback. Gain overrides passed
// here stay configured for the next call.
//
// Turn is a no-op once the emergency flag is down.
func (r *Rover) Turn(angle float64, opts ...Option) {
	if !r.Active() {
		return
	}
	cfg := newMotionConfig(opts)

	r.hw.Gyro.Reset()
	r.turnPID.Reset()
	r.turnPID.Settings(cfg.speedGains...)

	log.Debug("turn start", "angle", angle)

	for r.Active() && !cfg.exit() {
		heading := r.hw.Gyro.Angle()
		err := angle - heading
		if -turnTolerance < err && err < turnTolerance {
			break
		}

		out := r.turnPID.Execute(err)
		r.hw.Left.Run(out)
		r.hw.Right.Run(-out)

		r.publish(State{
			Mode:     "turn",
			Target:   angle,
			Measured: heading,
			SpeedOut: out,
			Left:     out,
			Right:    -out,
		})
		r.pace()
	}

	// Hold position on every exit path, including emergency stop.
	r.hw.Left.Hold()
	r.hw.Right.Hold()

	log.Debug("turn done", "angle", angle, "heading", r.hw.Gyro.Angle())
}
