package drive

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestPIDConstantError(t *testing.T) {
	p := NewPID(2, 0.5, 3)
	const e = 4.0

	for n := 1; n <= 6; n++ {
		out := p.Execute(e)

		// integral accumulates n*e; derivative is e on the first call
		// and zero afterwards
		want := 2*e + 0.5*e*float64(n)
		if n == 1 {
			want += 3 * e
		}
		if !floatEquals(out, want) {
			t.Errorf("call %d: got %v, want %v", n, out, want)
		}
		if !floatEquals(p.Output(), out) {
			t.Errorf("call %d: Output() = %v, want %v", n, p.Output(), out)
		}
	}
}

func TestPIDSettingsKeepsUnspecifiedGains(t *testing.T) {
	p := NewPID(1, 2, 3)

	p.Settings(Ki(5))

	kp, ki, kd := p.Gains()
	if kp != 1 || ki != 5 || kd != 3 {
		t.Errorf("Gains() = %v, %v, %v, want 1, 5, 3", kp, ki, kd)
	}
}

func TestPIDSettingsKeepsAccumulatedState(t *testing.T) {
	p := NewPID(1, 2, 3)
	p.Execute(10) // integral 10, previous error 10

	p.Settings(Kp(0), Ki(1), Kd(1))

	// error 0: integral stays 10, derivative is -10
	out := p.Execute(0)
	if want := 1*10.0 + 1*(0-10.0); !floatEquals(out, want) {
		t.Errorf("Execute(0) = %v, want %v", out, want)
	}
}

func TestPIDReset(t *testing.T) {
	p := NewPID(1, 1, 1)
	p.Execute(7)

	p.Reset()

	// fresh state: p=3, i=3, d=3-0
	if out := p.Execute(3); !floatEquals(out, 9) {
		t.Errorf("Execute(3) after Reset = %v, want 9", out)
	}
}

func TestPIDResetKeepsGains(t *testing.T) {
	p := NewPID(4, 5, 6)
	p.Execute(1)
	p.Reset()

	kp, ki, kd := p.Gains()
	if kp != 4 || ki != 5 || kd != 6 {
		t.Errorf("Gains() after Reset = %v, %v, %v, want 4, 5, 6", kp, ki, kd)
	}
}
