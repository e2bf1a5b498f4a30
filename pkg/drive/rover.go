package drive

import (
	"sync/atomic"
	"time"

	"github.com/mbrobotics/go-rover/internal/log"
	"github.com/mbrobotics/go-rover/pkg/geometry"
)

// stopPollInterval is the cadence of the emergency-stop watcher.
const stopPollInterval = 10 * time.Millisecond

// Default gains, tuned on the competition table.
var (
	defaultTurnGains        = [3]float64{6, 0.15, 0}
	defaultSpeedGains       = [3]float64{3, 0.17, 0}
	defaultHeadingGains     = [3]float64{15, 0.1, 0}
	defaultLineSpeedGains   = [3]float64{1.4, 0, 0}
	defaultLineHeadingGains = [3]float64{3, 0, 0.4}
)

// Hardware groups the device collaborators the motion core drives. Left
// and Right are the two steering wheels; LeftLight and RightLight are the
// downward-facing reflectance sensors used for line work.
type Hardware struct {
	Left, Right           WheelMotor
	Gyro                  GyroSensor
	LeftLight, RightLight LightSensor
	Stop                  StopInput
	Indicator             StatusIndicator
}

// Config carries the construction parameters for a Rover.
type Config struct {
	// Wheel converts chassis distances to motor degrees. The zero value
	// uses the stock wheel diameter.
	Wheel geometry.Wheel
	// Calibration supplies white/black reflectance references. Optional;
	// built-in defaults are used when nil.
	Calibration CalibrationSource
	// Tick paces the control loops. Zero means hardware-paced: loops run
	// as fast as the sensors answer.
	Tick time.Duration
}

// Rover owns one PID controller per closed loop, the emergency flag and
// the hardware collaborators, and exposes the motion primitives. Motion
// calls are synchronous and must not run concurrently with each other;
// only the stop watcher runs in the background.
type Rover struct {
	hw    Hardware
	wheel geometry.Wheel
	calib CalibrationSource
	tick  time.Duration

	turnPID        *PID
	speedPID       *PID
	headingPID     *PID
	lineSpeedPID   *PID
	lineHeadingPID *PID

	// active is written false by the watcher only, and never set true
	// again within the process. Every primitive reads it before starting
	// and on every loop iteration.
	active      atomic.Bool
	watcherStop chan struct{}
	watcherDone chan struct{}

	sink StateSink
}

// staticCalibration backs the built-in reflectance defaults.
type staticCalibration struct{ white, black float64 }

func (c staticCalibration) CalibrationLog() (white, black float64) {
	return c.white, c.black
}

// New constructs a Rover and starts the emergency-stop watcher.
func New(hw Hardware, cfg Config) *Rover {
	if cfg.Calibration == nil {
		cfg.Calibration = staticCalibration{white: 70, black: 12}
	}
	r := &Rover{
		hw:             hw,
		wheel:          geometry.NewWheel(cfg.Wheel.Diameter),
		calib:          cfg.Calibration,
		tick:           cfg.Tick,
		turnPID:        NewPID(defaultTurnGains[0], defaultTurnGains[1], defaultTurnGains[2]),
		speedPID:       NewPID(defaultSpeedGains[0], defaultSpeedGains[1], defaultSpeedGains[2]),
		headingPID:     NewPID(defaultHeadingGains[0], defaultHeadingGains[1], defaultHeadingGains[2]),
		lineSpeedPID:   NewPID(defaultLineSpeedGains[0], defaultLineSpeedGains[1], defaultLineSpeedGains[2]),
		lineHeadingPID: NewPID(defaultLineHeadingGains[0], defaultLineHeadingGains[1], defaultLineHeadingGains[2]),
		watcherStop:    make(chan struct{}),
		watcherDone:    make(chan struct{}),
	}
	r.active.Store(true)
	go r.watch()
	return r
}

// watch polls the emergency-stop input and trips the active flag. It is
// the sole writer of the flag; once tripped the flag stays down for the
// rest of the process. The watcher keeps polling after the trip.
func (r *Rover) watch() {
	defer close(r.watcherDone)
	ticker := time.NewTicker(stopPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.watcherStop:
			return
		case <-ticker.C:
			if r.hw.Stop == nil || !r.hw.Stop.Pressed() {
				continue
			}
			if r.active.CompareAndSwap(true, false) {
				if r.hw.Indicator != nil {
					r.hw.Indicator.SetStatus(StatusStopped)
				}
				log.Warn("emergency stop pressed, motion disabled")
			}
		}
	}
}

// Active reports whether motion is still allowed.
func (r *Rover) Active() bool {
	return r.active.Load()
}

// Close stops the watcher goroutine. Intended for test teardown; on the
// robot the watcher runs for the life of the process.
func (r *Rover) Close() {
	select {
	case <-r.watcherStop:
	default:
		close(r.watcherStop)
	}
	<-r.watcherDone
}

// Pause shows the paused status and blocks until resume is pressed.
func (r *Rover) Pause(resume StopInput) {
	if r.hw.Indicator != nil {
		r.hw.Indicator.SetStatus(StatusPaused)
	}
	for !resume.Pressed() {
		time.Sleep(stopPollInterval)
	}
	if r.hw.Indicator != nil {
		r.hw.Indicator.SetStatus(StatusReady)
	}
}

// TurnControl exposes the turn-loop controller for tuning.
func (r *Rover) TurnControl() *PID { return r.turnPID }

// SpeedControl exposes the drive speed-loop controller for tuning.
func (r *Rover) SpeedControl() *PID { return r.speedPID }

// HeadingControl exposes the drive heading-loop controller for tuning.
func (r *Rover) HeadingControl() *PID { return r.headingPID }

// LineSpeedControl exposes the line-follower speed controller for tuning.
func (r *Rover) LineSpeedControl() *PID { return r.lineSpeedPID }

// LineHeadingControl exposes the line-follower heading controller for tuning.
func (r *Rover) LineHeadingControl() *PID { return r.lineHeadingPID }

// SetStateSink registers a telemetry sink. Pass nil to detach. Not safe
// to call while a motion primitive is running.
func (r *Rover) SetStateSink(s StateSink) {
	r.sink = s
}

// State is a live snapshot of one control-loop iteration.
type State struct {
	Mode       string  `json:"mode"`
	Active     bool    `json:"active"`
	Target     float64 `json:"target"`
	Measured   float64 `json:"measured"`
	SpeedOut   float64 `json:"speed_out"`
	HeadingErr float64 `json:"heading_err"`
	HeadingOut float64 `json:"heading_out"`
	Left       float64 `json:"left"`
	Right      float64 `json:"right"`
	Timestamp  int64   `json:"ts"`
}

func (r *Rover) publish(st State) {
	if r.sink == nil {
		return
	}
	st.Active = r.Active()
	st.Timestamp = time.Now().UnixMilli()
	r.sink.Publish(st)
}

// pace sleeps one configured tick between loop iterations. With a zero
// tick the loops run at the latency of the hardware queries themselves.
func (r *Rover) pace() {
	if r.tick > 0 {
		time.Sleep(r.tick)
	}
}
