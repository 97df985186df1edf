package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/edgevision/go-camclass/pkg/camera"
	"github.com/edgevision/go-camclass/pkg/hub"
)

// handleStatus returns the overall run state for the dashboard header.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	consecutive, total := s.slot.Drops()
	return c.JSON(fiber.Map{
		"session":            s.sessionID,
		"uptime_s":           int(time.Since(s.startedAt).Seconds()),
		"state":              s.loop.State().String(),
		"camera":             s.camera.GetConfigJSON(),
		"frame_drops":        total,
		"frame_drop_streak":  consecutive,
		"prediction_clients": s.predictionHub.ClientCount(),
		"preview_clients":    s.cameraHub.ClientCount(),
	})
}

// handlePredictions returns the current top predictions, or an empty
// list when no inference has succeeded yet.
func (s *Server) handlePredictions(c *fiber.Ctx) error {
	preds := s.sink.Current()
	if preds == nil {
		return c.JSON(fiber.Map{"predictions": []any{}})
	}
	return c.JSON(fiber.Map{
		"predictions": preds,
		"updated_at":  s.sink.UpdatedAt().Format(time.RFC3339Nano),
	})
}

// handleStats returns inference loop counters.
func (s *Server) handleStats(c *fiber.Ctx) error {
	stats := s.loop.Stats()
	return c.JSON(fiber.Map{
		"state":           stats.State,
		"inferences":      stats.Inferences,
		"failures":        stats.Failures,
		"skips":           stats.Skips,
		"last_latency_ms": float64(stats.LastLatency) / 1e6,
		"avg_latency_ms":  float64(stats.AvgLatency) / 1e6,
	})
}

// handleGetCameraConfig returns the active camera configuration.
func (s *Server) handleGetCameraConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"config":  s.camera.GetConfigJSON(),
		"presets": camera.PresetNames(),
	})
}

// handleSetCameraConfig applies a partial camera config update.
func (s *Server) handleSetCameraConfig(c *fiber.Ctx) error {
	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}

	if err := s.camera.UpdateConfig(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"config": s.camera.GetConfigJSON()})
}

// handleFrame returns the most recent captured frame as a JPEG snapshot.
// Peek, not Latest: a dashboard poll must not reset the drop streak the
// status endpoint reports.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	f := s.slot.Peek()
	if f == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no frame captured yet",
		})
	}
	c.Set("Content-Type", "image/jpeg")
	return c.Send(f.Data)
}

// handlePredictionsWS streams prediction updates to a dashboard client.
func (s *Server) handlePredictionsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.predictionHub, conn)
	client.Run() // Blocks until the connection closes
}

// handleCameraWS streams preview JPEG frames to a dashboard client.
func (s *Server) handleCameraWS(conn *websocket.Conn) {
	client := hub.NewClient(s.cameraHub, conn)
	client.Run()
}
