// Package sim provides simulated drive hardware so the motion core can
// run without a robot: wheel motors that integrate commanded speed over
// wall time, a gyro derived from the wheel differential, scriptable
// reflectance sensors and a software stop button.
package sim

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mbrobotics/go-rover/internal/log"
	"github.com/mbrobotics/go-rover/pkg/drive"
)

var (
	_ drive.WheelMotor      = (*Motor)(nil)
	_ drive.GyroSensor      = (*Gyro)(nil)
	_ drive.LightSensor     = Light{}
	_ drive.StopInput       = (*Button)(nil)
	_ drive.StatusIndicator = (*Indicator)(nil)
)

// Motor is a simulated wheel motor. Rotation advances by the commanded
// speed times elapsed wall time, evaluated lazily on every query.
type Motor struct {
	mu      sync.Mutex
	speed   float64 // degrees per second
	angle   float64 // accumulated degrees
	total   float64 // accumulated degrees, never reset (for the gyro)
	last    time.Time
	stalled bool
}

// NewMotor returns a stopped motor.
func NewMotor() *Motor {
	return &Motor{last: time.Now()}
}

func (m *Motor) step() {
	now := time.Now()
	dt := now.Sub(m.last).Seconds()
	m.last = now
	delta := m.speed * dt
	m.angle += delta
	m.total += delta
}

// Run commands a signed speed in degrees per second.
func (m *Motor) Run(speed float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
	m.speed = speed
}

// Hold stops instantly and keeps position.
func (m *Motor) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
	m.speed = 0
}

// Brake stops without holding. The simulation does not model coasting,
// so Brake and Hold behave alike.
func (m *Motor) Brake() {
	m.Hold()
}

// ResetAngle zeroes the rotation counter.
func (m *Motor) ResetAngle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
	m.angle = 0
}

// Angle reports accumulated rotation since ResetAngle.
func (m *Motor) Angle() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
	return m.angle
}

// Stalled reports the scripted stall state.
func (m *Motor) Stalled(float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stalled
}

// SetStalled scripts a stall condition.
func (m *Motor) SetStalled(stalled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stalled = stalled
}

// totalAngle reports lifetime rotation, unaffected by ResetAngle.
func (m *Motor) totalAngle() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step()
	return m.total
}

// Gyro derives chassis heading from the wheel differential of a
// simulated chassis.
type Gyro struct {
	left, right  *Motor
	wheelCircCm  float64
	trackWidthCm float64
	mu           sync.Mutex
	referenceDeg float64
}

// yaw returns absolute heading in degrees, clockwise positive for a
// left-forward/right-backward differential.
func (g *Gyro) yaw() float64 {
	leftCm := g.left.totalAngle() / 360 * g.wheelCircCm
	rightCm := g.right.totalAngle() / 360 * g.wheelCircCm
	return (leftCm - rightCm) / g.trackWidthCm * 180 / math.Pi
}

// Reset zeroes the heading reference.
func (g *Gyro) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.referenceDeg = g.yaw()
}

// Angle reports heading in degrees since the last Reset.
func (g *Gyro) Angle() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.yaw() - g.referenceDeg
}

// Light is a reflectance sensor fed by a user function.
type Light struct {
	Fn func() float64
}

// Reflection returns the scripted reading.
func (l Light) Reflection() float64 {
	if l.Fn == nil {
		return 0
	}
	return l.Fn()
}

// Button is a software momentary button.
type Button struct {
	pressed atomic.Bool
}

// Press latches the button down.
func (b *Button) Press() {
	b.pressed.Store(true)
}

// Release lets the button up.
func (b *Button) Release() {
	b.pressed.Store(false)
}

// Pressed reports the button state.
func (b *Button) Pressed() bool {
	return b.pressed.Load()
}

// Indicator logs status changes instead of lighting an LED.
type Indicator struct{}

// SetStatus logs the new status.
func (i *Indicator) SetStatus(s drive.Status) {
	switch s {
	case drive.StatusPaused:
		log.Info("indicator", "status", "paused")
	case drive.StatusStopped:
		log.Info("indicator", "status", "stopped")
	default:
		log.Info("indicator", "status", "ready")
	}
}

// Chassis bundles a full simulated hardware set.
type Chassis struct {
	Left, Right *Motor
	Gyro        *Gyro
	Stop        *Button
	Indicator   *Indicator
}

// NewChassis builds a simulated differential-drive chassis.
func NewChassis(wheelDiameterCm, trackWidthCm float64) *Chassis {
	left := NewMotor()
	right := NewMotor()
	return &Chassis{
		Left:  left,
		Right: right,
		Gyro: &Gyro{
			left:         left,
			right:        right,
			wheelCircCm:  wheelDiameterCm * math.Pi,
			trackWidthCm: trackWidthCm,
		},
		Stop:      &Button{},
		Indicator: &Indicator{},
	}
}
