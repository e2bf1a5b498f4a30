package drive

// PID is a proportional-integral-derivative controller. One instance
// serves one closed loop at a time; the Rover owns a controller per loop
// and reconfigures it in place between motion calls. Gains persist across
// calls as tunable defaults, accumulated state does not.
type PID struct {
	kp, ki, kd float64

	integral  float64
	prevError float64
	output    float64
}

// NewPID returns a controller with the given gains.
func NewPID(kp, ki, kd float64) *PID {
	return &PID{kp: kp, ki: ki, kd: kd}
}

// GainOption overrides a single gain. Gains without an option keep their
// current value.
type GainOption func(*PID)

// Kp overrides the proportional gain.
func Kp(v float64) GainOption { return func(p *PID) { p.kp = v } }

// Ki overrides the integral gain.
func Ki(v float64) GainOption { return func(p *PID) { p.ki = v } }

// Kd overrides the derivative gain.
func Kd(v float64) GainOption { return func(p *PID) { p.kd = v } }

// Settings applies gain overrides. Accumulated state is left untouched.
func (p *PID) Settings(opts ...GainOption) {
	for _, o := range opts {
		o(p)
	}
}

// Gains returns the current kp, ki, kd.
func (p *PID) Gains() (kp, ki, kd float64) {
	return p.kp, p.ki, p.kd
}

// Reset zeroes the integral accumulator and the previous error so state
// never leaks between unrelated motion calls.
func (p *PID) Reset() {
	p.integral = 0
	p.prevError = 0
}

// Execute advances the controller by one iteration for the given error
// and returns the new output. No clamping happens here; callers apply
// their own speed limits.
func (p *PID) Execute(err float64) float64 {
	p.integral += err
	derivative := err - p.prevError
	p.output = p.kp*err + p.ki*p.integral + p.kd*derivative
	p.prevError = err
	return p.output
}

// Output returns the most recent Execute result.
func (p *PID) Output() float64 {
	return p.output
}
