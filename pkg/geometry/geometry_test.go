package geometry

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestDistanceToDegrees(t *testing.T) {
	// A wheel of diameter 36/pi rolls exactly 36 cm per revolution, so
	// 1 cm is 10 motor degrees.
	w := Wheel{Diameter: 36 / math.Pi}

	cases := []struct {
		cm   float64
		want float64
	}{
		{0, 0},
		{1, 10},
		{36, 360},
		{-50, -500},
	}
	for _, tc := range cases {
		if got := w.DistanceToDegrees(tc.cm); math.Abs(got-tc.want) > tolerance {
			t.Errorf("DistanceToDegrees(%v) = %v, want %v", tc.cm, got, tc.want)
		}
	}
}

func TestDegreesToDistanceInverts(t *testing.T) {
	w := NewWheel(5.6)
	for _, cm := range []float64{0, 1, 33.3, -120} {
		back := w.DegreesToDistance(w.DistanceToDegrees(cm))
		if math.Abs(back-cm) > tolerance {
			t.Errorf("round trip of %v cm = %v", cm, back)
		}
	}
}

func TestNewWheelFallsBackToStockDiameter(t *testing.T) {
	for _, d := range []float64{0, -1} {
		if w := NewWheel(d); w.Diameter != DefaultWheelDiameter {
			t.Errorf("NewWheel(%v).Diameter = %v, want %v", d, w.Diameter, DefaultWheelDiameter)
		}
	}
	if w := NewWheel(7.5); w.Diameter != 7.5 {
		t.Errorf("NewWheel(7.5).Diameter = %v", w.Diameter)
	}
}

func TestZeroValueBehavesLikeStockWheel(t *testing.T) {
	var zero Wheel
	stock := NewWheel(DefaultWheelDiameter)
	if got, want := zero.Circumference(), stock.Circumference(); math.Abs(got-want) > tolerance {
		t.Errorf("zero-value circumference = %v, want %v", got, want)
	}
}
