// Package calibration persists the white and black reflectance references
// recorded when the light sensors are calibrated against the mat.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
)

// Built-in references used when no calibration file exists yet.
const (
	DefaultWhite = 70
	DefaultBlack = 12
)

// Log holds one calibration run.
type Log struct {
	White float64 `json:"white"`
	Black float64 `json:"black"`
}

// Default returns the built-in references.
func Default() Log {
	return Log{White: DefaultWhite, Black: DefaultBlack}
}

// Load reads a calibration file written by Save.
func Load(path string) (Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Log{}, fmt.Errorf("read calibration file: %w", err)
	}
	var l Log
	if err := json.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("parse calibration file %s: %w", path, err)
	}
	return l, nil
}

// LoadOrDefault falls back to the built-in references when the file is
// missing or unreadable.
func LoadOrDefault(path string) Log {
	l, err := Load(path)
	if err != nil {
		return Default()
	}
	return l
}

// Save writes the calibration file.
func (l Log) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write calibration file: %w", err)
	}
	return nil
}

// CalibrationLog returns the white and black references, satisfying the
// motion core's CalibrationSource.
func (l Log) CalibrationLog() (white, black float64) {
	return l.White, l.Black
}
