package handler

import (
	"net/http"
	"time"

	"minerops/internal/model"
	"minerops/pkg/logger"
	redisstore "minerops/pkg/store/redis"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins, production should use stricter checks
	},
}

// streamInterval is how often the stats stream pushes a frame.
const streamInterval = 5 * time.Second

// StreamHandler pushes cached operation snapshots over WebSocket
type StreamHandler struct {
	snapshots *redisstore.SnapshotRepository
}

// NewStreamHandler creates stream handler
func NewStreamHandler(snapshots *redisstore.SnapshotRepository) *StreamHandler {
	return &StreamHandler{snapshots: snapshots}
}

// statsFrame is one pushed stream payload.
type statsFrame struct {
	Mining    *model.MiningStats         `json:"mining,omitempty"`
	Energy    *model.EnergyData          `json:"energy,omitempty"`
	Rental    *model.RentalProfitability `json:"rental,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}

// Stats streams the cached snapshots until the client disconnects
// @Summary Stream operation stats
// @Description WebSocket stream of the cached mining, energy and rental snapshots
// @Tags stream
// @Router /ws/stats [get]
func (h *StreamHandler) Stats(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("failed to upgrade to websocket: %v", err)
		return
	}
	defer ws.Close()

	// Drain client frames so close messages are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	// First frame immediately, then on every tick.
	if err := h.pushFrame(c, ws); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			if err := h.pushFrame(c, ws); err != nil {
				return
			}
		}
	}
}

func (h *StreamHandler) pushFrame(c *gin.Context, ws *websocket.Conn) error {
	ctx := c.Request.Context()
	frame := statsFrame{Timestamp: time.Now().UTC()}

	mining, err := h.snapshots.GetMiningStats(ctx)
	if err != nil {
		logger.Warnf("stats stream: failed to load mining snapshot: %v", err)
	}
	frame.Mining = mining

	energy, err := h.snapshots.GetEnergyData(ctx)
	if err != nil {
		logger.Warnf("stats stream: failed to load energy snapshot: %v", err)
	}
	frame.Energy = energy

	rental, err := h.snapshots.GetRentalProfitability(ctx)
	if err != nil {
		logger.Warnf("stats stream: failed to load rental snapshot: %v", err)
	}
	frame.Rental = rental

	return ws.WriteJSON(frame)
}
