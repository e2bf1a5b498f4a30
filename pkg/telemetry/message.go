// Package telemetry serves the live dashboard: a small HTTP API plus a
// websocket stream of motion-loop snapshots and log lines, so a
// workstation can watch the rover drive.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mbrobotics/go-rover/pkg/drive"
)

// MessageType identifies a telemetry frame.
type MessageType string

const (
	TypeState MessageType = "state" // motion-loop snapshot
	TypeLog   MessageType = "log"   // log line
	TypePing  MessageType = "ping"  // health check
	TypePong  MessageType = "pong"  // health check response
)

// Message is the envelope for every frame on the telemetry socket.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// LogEntry is the payload of a TypeLog frame.
type LogEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewMessage wraps data in an envelope stamped with the current time.
func NewMessage(msgType MessageType, data any) (*Message, error) {
	msg := &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", msgType, err)
		}
		msg.Data = raw
	}
	return msg, nil
}

// Encode returns the wire form of the message.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a wire frame back into a message.
func Decode(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode telemetry frame: %w", err)
	}
	return &m, nil
}

// State decodes the payload of a TypeState message.
func (m *Message) State() (drive.State, error) {
	var st drive.State
	if m.Type != TypeState {
		return st, fmt.Errorf("message type %q is not %q", m.Type, TypeState)
	}
	if err := json.Unmarshal(m.Data, &st); err != nil {
		return st, fmt.Errorf("decode state payload: %w", err)
	}
	return st, nil
}

// Log decodes the payload of a TypeLog message.
func (m *Message) Log() (LogEntry, error) {
	var entry LogEntry
	if m.Type != TypeLog {
		return entry, fmt.Errorf("message type %q is not %q", m.Type, TypeLog)
	}
	if err := json.Unmarshal(m.Data, &entry); err != nil {
		return entry, fmt.Errorf("decode log payload: %w", err)
	}
	return entry, nil
}
