package drive

// ExitFunc is an extra termination predicate polled on every loop
// iteration. Returning true ends the motion call.
type ExitFunc func() bool

func neverExit() bool { return false }

// Default speed bounds for Drive, in motor degrees per second.
const (
	DefaultMinSpeed = 90
	DefaultMaxSpeed = 800
)

type motionConfig struct {
	speedGains   []GainOption
	headingGains []GainOption
	minSpeed     float64
	maxSpeed     float64
	heading      Heading
	exit         ExitFunc
	target       float64
	targetSet    bool
	sensor       LightSensor
}

// Option tunes a single motion call. Anything not supplied falls back to
// the owning controller's current configuration, so overrides from a
// previous call stay in effect until changed again.
type Option func(*motionConfig)

func newMotionConfig(opts []Option) *motionConfig {
	cfg := &motionConfig{
		minSpeed: DefaultMinSpeed,
		maxSpeed: DefaultMaxSpeed,
		exit:     neverExit,
	}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithSpeedKp overrides the speed-loop proportional gain for this call.
func WithSpeedKp(v float64) Option {
	return func(c *motionConfig) { c.speedGains = append(c.speedGains, Kp(v)) }
}

// WithSpeedKi overrides the speed-loop integral gain for this call.
func WithSpeedKi(v float64) Option {
	return func(c *motionConfig) { c.speedGains = append(c.speedGains, Ki(v)) }
}

// WithSpeedKd overrides the speed-loop derivative gain for this call.
func WithSpeedKd(v float64) Option {
	return func(c *motionConfig) { c.speedGains = append(c.speedGains, Kd(v)) }
}

// WithHeadingKp overrides the heading-loop proportional gain for this call.
func WithHeadingKp(v float64) Option {
	return func(c *motionConfig) { c.headingGains = append(c.headingGains, Kp(v)) }
}

// WithHeadingKi overrides the heading-loop integral gain for this call.
func WithHeadingKi(v float64) Option {
	return func(c *motionConfig) { c.headingGains = append(c.headingGains, Ki(v)) }
}

// WithHeadingKd overrides the heading-loop derivative gain for this call.
func WithHeadingKd(v float64) Option {
	return func(c *motionConfig) { c.headingGains = append(c.headingGains, Kd(v)) }
}

// WithSpeedRange bounds the commanded wheel speed magnitude. The sign is
// taken from the travel direction, not from the arguments.
func WithSpeedRange(min, max float64) Option {
	return func(c *motionConfig) {
		c.minSpeed = min
		c.maxSpeed = max
	}
}

// WithHeading substitutes the heading-error source for this call.
func WithHeading(h Heading) Option {
	return func(c *motionConfig) { c.heading = h }
}

// WithExit sets a termination predicate checked every iteration.
func WithExit(fn ExitFunc) Option {
	return func(c *motionConfig) { c.exit = fn }
}

// WithTarget sets the reflectance value FollowLine steers along instead
// of the calibration default.
func WithTarget(v float64) Option {
	return func(c *motionConfig) {
		c.target = v
		c.targetSet = true
	}
}

// WithSensor overrides the light sensor DriveToLine watches. The default
// is the left sensor.
func WithSensor(s LightSensor) Option {
	return func(c *motionConfig) { c.sensor = s }
}
