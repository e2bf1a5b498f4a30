package drive

import (
	"errors"
	"testing"
)

// newSquareRig wires a Rover whose light readings come from the given
// closures, polled once per alignment-loop iteration. The wheels
// integrate commands so the in-between nudge can finish.
func newSquareRig(t *testing.T, leftFn, rightFn func() float64) (*mockMotor, *mockMotor, *Rover) {
	t.Helper()
	left := &mockMotor{}
	right := &mockMotor{}
	left.onRun = func(speed float64) { left.angle += speed * 0.01 }
	right.onRun = func(speed float64) { right.angle += speed * 0.01 }
	rover := New(Hardware{
		Left:       left,
		Right:      right,
		Gyro:       &mockGyro{},
		LeftLight:  sensorFunc(leftFn),
		RightLight: sensorFunc(rightFn),
		Stop:       &mockStop{},
		Indicator:  &mockIndicator{},
	}, Config{Wheel: testWheel})
	t.Cleanup(rover.Close)
	return left, right, rover
}

func TestSquareLineHoldsEachWheelOnItsOwnCrossing(t *testing.T) {
	leftPolls, rightPolls := 0, 0
	left, right, rover := newSquareRig(t,
		func() float64 {
			leftPolls++
			if leftPolls >= 3 {
				return 65 // past the white bound of 70-10
			}
			return 35
		},
		func() float64 {
			rightPolls++
			if rightPolls >= 5 {
				return 65
			}
			return 35
		})

	if err := rover.SquareLine(Forward, 150, White); err != nil {
		t.Fatalf("SquareLine: %v", err)
	}

	// Two approach passes plus the final park.
	if left.holds != 3 || right.holds != 3 {
		t.Errorf("holds = %d/%d, want 3/3", left.holds, right.holds)
	}
	// One full-speed command per pass; the rest are nudge commands.
	if countValue(left.runs, 150) != 2 || countValue(right.runs, 150) != 2 {
		t.Errorf("approach commands = %d/%d, want 2/2",
			countValue(left.runs, 150), countValue(right.runs, 150))
	}
	// The nudge runs the drive loop once, which brake-stops.
	if left.brakes != 1 || right.brakes != 1 {
		t.Errorf("brakes = %d/%d, want 1/1", left.brakes, right.brakes)
	}
	// The late wheel kept running past the early one's crossing.
	if rightPolls <= leftPolls {
		t.Errorf("right polled %d times, left %d; the late side must keep polling", rightPolls, leftPolls)
	}
	// Nudge commands run against the approach direction.
	for _, s := range left.runs {
		if s != 150 && s >= 0 {
			t.Fatalf("nudge command %v, want negative", s)
		}
	}
}

func TestSquareLineBackward(t *testing.T) {
	left, right, rover := newSquareRig(t,
		func() float64 { return 10 },
		func() float64 { return 10 })

	if err := rover.SquareLine(Backward, 150, Black); err != nil {
		t.Fatalf("SquareLine: %v", err)
	}

	// Sign of the speed argument is ignored; dir decides.
	if countValue(left.runs, -150) != 2 || countValue(right.runs, -150) != 2 {
		t.Errorf("approach commands = %d/%d, want 2/2",
			countValue(left.runs, -150), countValue(right.runs, -150))
	}
	if left.holds != 3 || right.holds != 3 {
		t.Errorf("holds = %d/%d, want 3/3", left.holds, right.holds)
	}
}

func TestSquareLineInvalidColor(t *testing.T) {
	left, right, rover := newSquareRig(t,
		func() float64 { return 35 },
		func() float64 { return 35 })

	err := rover.SquareLine(Forward, 150, LineColor("grey"))
	if !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("err = %v, want ErrInvalidColor", err)
	}
	if left.touched() || right.touched() {
		t.Error("invalid color must fail before anything moves")
	}
}

func TestSquareLineEmergencyAbort(t *testing.T) {
	var rover *Rover
	leftPolls, rightPolls := 0, 0
	left, right, r := newSquareRig(t,
		func() float64 {
			leftPolls++
			if leftPolls >= 2 {
				return 65
			}
			return 35
		},
		func() float64 {
			rightPolls++
			if rightPolls >= 4 {
				rover.active.Store(false)
			}
			return 35
		})
	rover = r

	if err := rover.SquareLine(Forward, 150, White); err != nil {
		t.Fatalf("SquareLine: %v", err)
	}

	// The early wheel held on its crossing; the abort parks both.
	if left.holds != 2 || right.holds != 1 {
		t.Errorf("holds = %d/%d, want 2/1", left.holds, right.holds)
	}
	if len(left.runs) != 1 || len(right.runs) != 1 {
		t.Errorf("runs = %d/%d, want 1/1 (no second pass, no nudge)", len(left.runs), len(right.runs))
	}
	if left.brakes != 0 {
		t.Error("aborted run must not reach the nudge")
	}
}

func TestSquareLineNoOpWhenStopped(t *testing.T) {
	left, right, rover := newSquareRig(t,
		func() float64 { return 65 },
		func() float64 { return 65 })
	rover.active.Store(false)

	if err := rover.SquareLine(Forward, 150, White); err != nil {
		t.Fatalf("SquareLine: %v", err)
	}
	if left.touched() || right.touched() {
		t.Error("stopped rover must not touch the motors")
	}
}
