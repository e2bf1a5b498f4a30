// Package config provides configuration helpers for go-rover commands.
package config

import (
	"os"
	"strconv"

	"github.com/mbrobotics/go-rover/pkg/geometry"
)

// Defaults.
const (
	DefaultDashboardPort   = "8090"
	DefaultCalibrationPath = "calibration.json"
)

// DashboardPort returns the telemetry dashboard port from
// ROVER_DASHBOARD_PORT, or the default.
func DashboardPort() string {
	if port := os.Getenv("ROVER_DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// CalibrationPath returns the calibration file path from
// ROVER_CALIBRATION, or the default.
func CalibrationPath() string {
	if path := os.Getenv("ROVER_CALIBRATION"); path != "" {
		return path
	}
	return DefaultCalibrationPath
}

// WheelDiameter returns the drive wheel diameter in centimeters from
// ROVER_WHEEL_DIAMETER. Falls back to the stock wheel on absence or a
// bad value.
func WheelDiameter() float64 {
	if v := os.Getenv("ROVER_WHEEL_DIAMETER"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			return d
		}
	}
	return geometry.DefaultWheelDiameter
}

// LogLevel returns the log level from ROVER_LOG_LEVEL, default "info".
func LogLevel() string {
	if lvl := os.Getenv("ROVER_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
