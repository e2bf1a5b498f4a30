package drive

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mbrobotics/go-rover/pkg/geometry"
)

// testWheel makes 1 cm equal exactly 10 motor degrees.
var testWheel = geometry.Wheel{Diameter: 36 / math.Pi}

// mockMotor records every command for assertions. onRun lets a test
// advance the simulated world in response to a command.
type mockMotor struct {
	runs    []float64
	holds   int
	brakes  int
	resets  int
	angle   float64
	stalled bool
	onRun   func(speed float64)
}

func (m *mockMotor) Run(speed float64) {
	m.runs = append(m.runs, speed)
	if m.onRun != nil {
		m.onRun(speed)
	}
}

func (m *mockMotor) Hold()  { m.holds++ }
func (m *mockMotor) Brake() { m.brakes++ }

func (m *mockMotor) ResetAngle() {
	m.resets++
	m.angle = 0
}

func (m *mockMotor) Angle() float64             { return m.angle }
func (m *mockMotor) Stalled(speed float64) bool { return m.stalled }

func (m *mockMotor) touched() bool {
	return len(m.runs) > 0 || m.holds > 0 || m.brakes > 0 || m.resets > 0
}

type mockGyro struct {
	angle  float64
	resets int
	fn     func() float64
}

func (g *mockGyro) Reset() {
	g.resets++
	g.angle = 0
}

func (g *mockGyro) Angle() float64 {
	if g.fn != nil {
		return g.fn()
	}
	return g.angle
}

// sensorFunc adapts a closure to LightSensor.
type sensorFunc func() float64

func (f sensorFunc) Reflection() float64 { return f() }

// mockStop is pressed from the test while the watcher polls it.
type mockStop struct {
	pressed atomic.Bool
}

func (s *mockStop) Press()        { s.pressed.Store(true) }
func (s *mockStop) Release()      { s.pressed.Store(false) }
func (s *mockStop) Pressed() bool { return s.pressed.Load() }

// mockIndicator is written from the watcher goroutine.
type mockIndicator struct {
	mu       sync.Mutex
	statuses []Status
}

func (i *mockIndicator) SetStatus(s Status) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.statuses = append(i.statuses, s)
}

func (i *mockIndicator) seen() []Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]Status(nil), i.statuses...)
}

type recordSink struct {
	states []State
}

func (s *recordSink) Publish(st State) { s.states = append(s.states, st) }

// rig wires a Rover to recording mocks. Light readings come from the
// leftRefl/rightRefl fields so tests can move the world under the robot.
type rig struct {
	left, right *mockMotor
	gyro        *mockGyro
	stop        *mockStop
	ind         *mockIndicator
	rover       *Rover

	leftRefl  float64
	rightRefl float64
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		left:      &mockMotor{},
		right:     &mockMotor{},
		gyro:      &mockGyro{},
		stop:      &mockStop{},
		ind:       &mockIndicator{},
		leftRefl:  35,
		rightRefl: 35,
	}
	r.rover = New(Hardware{
		Left:       r.left,
		Right:      r.right,
		Gyro:       r.gyro,
		LeftLight:  sensorFunc(func() float64 { return r.leftRefl }),
		RightLight: sensorFunc(func() float64 { return r.rightRefl }),
		Stop:       r.stop,
		Indicator:  r.ind,
	}, Config{Wheel: testWheel})
	t.Cleanup(r.rover.Close)
	return r
}

// deactivate trips the emergency flag directly, bypassing the watcher.
func (r *rig) deactivate() {
	r.rover.active.Store(false)
}

func countValue(runs []float64, v float64) int {
	n := 0
	for _, s := range runs {
		if s == v {
			n++
		}
	}
	return n
}
