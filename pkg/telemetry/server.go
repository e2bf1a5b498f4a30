package telemetry

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/mbrobotics/go-rover/internal/log"
	"github.com/mbrobotics/go-rover/pkg/drive"
)

// Server is the dashboard server. It keeps the latest motion snapshot
// for the REST API and streams every snapshot and log line over the
// websocket hub. It plugs into the motion core as its StateSink.
type Server struct {
	app  *fiber.App
	port string
	hub  *Hub

	mu    sync.RWMutex
	state drive.State
}

var _ drive.StateSink = (*Server)(nil)

// NewServer creates a dashboard server on the given port.
func NewServer(port string) *Server {
	s := &Server{
		port: port,
		hub:  NewHub(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Rover Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for workstation dashboards
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/state", s.handleState)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/telemetry", websocket.New(s.handleTelemetryWS))

	s.app = app
	return s
}

// Start runs the hub and the HTTP listener. Blocks.
func (s *Server) Start() error {
	go s.hub.Run()
	log.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server on its own goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server", "error", err)
		}
	}()
}

// Shutdown stops the hub and the listener.
func (s *Server) Shutdown() error {
	s.hub.Stop()
	return s.app.Shutdown()
}

// Publish stores the snapshot and broadcasts it to all clients.
// It never blocks; slow dashboards lose frames, not the motion loop.
func (s *Server) Publish(st drive.State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	msg, err := NewMessage(TypeState, st)
	if err != nil {
		return
	}
	s.hub.Broadcast(msg)
}

// Log broadcasts a log line to connected dashboards.
func (s *Server) Log(level, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Level:   level,
		Message: message,
	}
	msg, err := NewMessage(TypeLog, entry)
	if err != nil {
		return
	}
	s.hub.Broadcast(msg)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleState(c *fiber.Ctx) error {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()
	return c.JSON(state)
}

func (s *Server) handleTelemetryWS(conn *websocket.Conn) {
	NewClient(s.hub, conn).Run()
}
