package telemetry

import (
	"testing"

	"github.com/mbrobotics/go-rover/pkg/drive"
)

func TestStateMessageRoundTrip(t *testing.T) {
	st := drive.State{
		Mode:       "drive",
		Active:     true,
		Target:     1000,
		Measured:   420,
		SpeedOut:   300,
		HeadingErr: -2.5,
		HeadingOut: -37.5,
		Left:       300,
		Right:      337.5,
		Timestamp:  1700000000000,
	}

	msg, err := NewMessage(TypeState, st)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.Timestamp == 0 {
		t.Error("envelope must be stamped")
	}

	wire, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Type != TypeState {
		t.Fatalf("type = %q, want %q", decoded.Type, TypeState)
	}

	got, err := decoded.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if got != st {
		t.Errorf("state = %+v, want %+v", got, st)
	}
}

func TestLogMessageRoundTrip(t *testing.T) {
	entry := LogEntry{Time: "12:03:07", Level: "WARN", Message: "emergency stop pressed"}

	msg, err := NewMessage(TypeLog, entry)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	wire, err := msg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	got, err := decoded.Log()
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if got != entry {
		t.Errorf("entry = %+v, want %+v", got, entry)
	}
}

func TestPayloadAccessorsRejectWrongType(t *testing.T) {
	msg, err := NewMessage(TypePing, nil)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if _, err := msg.State(); err == nil {
		t.Error("State() on a ping frame must fail")
	}
	if _, err := msg.Log(); err == nil {
		t.Error("Log() on a ping frame must fail")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("{")); err == nil {
		t.Fatal("want error for a truncated frame")
	}
}
