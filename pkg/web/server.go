// Package web provides the live classification dashboard for camclass
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/edgevision/go-camclass/internal/log"
	"github.com/edgevision/go-camclass/pkg/camera"
	"github.com/edgevision/go-camclass/pkg/classify"
	"github.com/edgevision/go-camclass/pkg/frame"
	"github.com/edgevision/go-camclass/pkg/hub"
	"github.com/edgevision/go-camclass/pkg/pipeline"
)

// PredictionUpdate is the payload pushed to dashboard clients on each
// published prediction set.
type PredictionUpdate struct {
	Time        string               `json:"time"`
	Predictions classify.Predictions `json:"predictions"`
}

// Server is the dashboard server. It reads the pipeline's sink and slot,
// and pushes prediction and preview updates over websockets.
type Server struct {
	app  *fiber.App
	port string

	sessionID string
	startedAt time.Time

	slot   *frame.Slot
	sink   *pipeline.Sink
	loop   *pipeline.Loop
	camera *camera.Manager

	predictionHub *hub.Hub
	cameraHub     *hub.Hub
}

// NewServer creates the dashboard server and registers its routes.
func NewServer(port string, slot *frame.Slot, sink *pipeline.Sink, loop *pipeline.Loop, cam *camera.Manager) *Server {
	s := &Server{
		port:          port,
		sessionID:     uuid.NewString(),
		startedAt:     time.Now(),
		slot:          slot,
		sink:          sink,
		loop:          loop,
		camera:        cam,
		predictionHub: hub.New("predictions"),
		cameraHub:     hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "camclass dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/predictions", s.handlePredictions)
	api.Get("/stats", s.handleStats)
	api.Get("/camera/config", s.handleGetCameraConfig)
	api.Post("/camera/config", s.handleSetCameraConfig)
	api.Get("/frame", s.handleFrame)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/predictions", websocket.New(s.handlePredictionsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start starts the hubs and serves until Shutdown. Sink subscription
// happens here so every published set reaches connected clients.
func (s *Server) Start() error {
	go s.predictionHub.Run()
	go s.cameraHub.Run()

	s.sink.Subscribe(func(preds classify.Predictions) {
		s.predictionHub.BroadcastJSON(PredictionUpdate{
			Time:        time.Now().Format("15:04:05.000"),
			Predictions: preds,
		})
	})

	log.With("session", s.sessionID).Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "err", err)
		}
	}()
}

// SendCameraFrame pushes a preview frame to all connected clients.
// This is the raw-frame preview path, separate from the inference loop.
func (s *Server) SendCameraFrame(jpeg []byte) {
	if s.cameraHub.ClientCount() == 0 {
		return
	}
	s.cameraHub.BroadcastBinary(jpeg)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
