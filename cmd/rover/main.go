package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mbrobotics/go-rover/internal/config"
	"github.com/mbrobotics/go-rover/internal/log"
	"github.com/mbrobotics/go-rover/pkg/calibration"
	"github.com/mbrobotics/go-rover/pkg/drive"
	"github.com/mbrobotics/go-rover/pkg/geometry"
	"github.com/mbrobotics/go-rover/pkg/sim"
	"github.com/mbrobotics/go-rover/pkg/telemetry"
)

func parsePath(s string) (drive.Path, error) {
	parts := strings.Split(s, ",")
	path := make(drive.Path, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("path leg %q: %w", part, err)
		}
		path = append(path, v)
	}
	if err := path.Validate(); err != nil {
		return nil, err
	}
	return path, nil
}

func main() {
	pathSpec := flag.String("path", "50,90,30,-90,50", "mission path: distance,angle,...,distance (cm and degrees)")
	dashboard := flag.Bool("dashboard", true, "serve the telemetry dashboard")
	port := flag.String("port", config.DashboardPort(), "dashboard port")
	track := flag.Float64("track", 12.0, "simulated track width in cm")
	tick := flag.Duration("tick", 2*time.Millisecond, "control loop pacing")
	flag.Parse()

	log.Init(config.LogLevel())

	path, err := parsePath(*pathSpec)
	if err != nil {
		log.Error("bad mission path", "error", err)
		os.Exit(1)
	}

	calib := calibration.LoadOrDefault(config.CalibrationPath())
	chassis := sim.NewChassis(config.WheelDiameter(), *track)

	// The simulated mat reads mid-gray everywhere; line work needs a
	// scripted course, the mission here only drives and turns.
	mat := sim.Light{Fn: func() float64 { return calib.White / 2 }}

	rover := drive.New(drive.Hardware{
		Left:       chassis.Left,
		Right:      chassis.Right,
		Gyro:       chassis.Gyro,
		LeftLight:  mat,
		RightLight: mat,
		Stop:       chassis.Stop,
		Indicator:  chassis.Indicator,
	}, drive.Config{
		Wheel:       geometry.NewWheel(config.WheelDiameter()),
		Calibration: calib,
		Tick:        *tick,
	})
	defer rover.Close()

	var dash *telemetry.Server
	if *dashboard {
		dash = telemetry.NewServer(*port)
		rover.SetStateSink(dash)
		dash.StartAsync()
		defer dash.Shutdown()
	}

	// Ctrl-C acts as the emergency stop button.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("signal received, tripping emergency stop")
		chassis.Stop.Press()
	}()

	log.Info("mission start", "legs", len(path))
	if dash != nil {
		dash.Log("info", fmt.Sprintf("mission start: %d legs", len(path)))
	}

	if err := rover.RunPath(path); err != nil {
		log.Error("mission", "error", err)
		os.Exit(1)
	}

	if rover.Active() {
		log.Info("mission complete")
	} else {
		log.Warn("mission interrupted by emergency stop")
	}
	if dash != nil {
		dash.Log("info", "mission finished")
		// Leave the dashboard up briefly so clients catch the last frames.
		time.Sleep(500 * time.Millisecond)
	}
}
