package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"sacco-ledger/internal/core/services"
	"sacco-ledger/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// heartbeatInterval keeps idle proxies from closing the stream
const heartbeatInterval = 30 * time.Second

// SnapshotStreamHandler pushes dashboard snapshots to connected clients over SSE
type SnapshotStreamHandler struct {
	snapshots *services.SnapshotService
	heartbeat time.Duration
}

// NewSnapshotStreamHandler creates a new stream handler
func NewSnapshotStreamHandler(snapshots *services.SnapshotService) *SnapshotStreamHandler {
	return &SnapshotStreamHandler{
		snapshots: snapshots,
		heartbeat: heartbeatInterval,
	}
}

// Stream sends the latest snapshot, then every new one as it is computed
// @Summary Dashboard snapshot stream
// @Description Server-sent events; one "snapshot" event per refresh (Admin only)
// @Tags Dashboard
// @Produce text/event-stream
// @Security BearerAuth
// @Router /dashboard/stream [get]
func (h *SnapshotStreamHandler) Stream(c *fiber.Ctx) error {
	clientID := uuid.NewString()
	log := logger.FromContext(c.UserContext()).With().Str("client_id", clientID).Logger()

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	// Slow clients drop snapshots rather than block the refresh job
	events := make(chan services.Snapshot, 4)
	unsubscribe := h.snapshots.Subscribe(func(s services.Snapshot) {
		select {
		case events <- s:
		default:
		}
	})

	latest, hasLatest := h.snapshots.Latest()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		fmt.Fprintf(w, "event: connected\ndata: {\"client_id\":%q}\n\n", clientID)
		if hasLatest {
			writeSnapshotEvent(w, latest)
		}
		if err := w.Flush(); err != nil {
			return
		}
		log.Debug().Msg("snapshot stream client connected")

		heartbeat := time.NewTicker(h.heartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case snap := <-events:
				writeSnapshotEvent(w, snap)
			case <-heartbeat.C:
				fmt.Fprintf(w, ": heartbeat\n\n")
			}
			if err := w.Flush(); err != nil {
				log.Debug().Msg("snapshot stream client disconnected")
				return
			}
		}
	}))

	return nil
}

func writeSnapshotEvent(w *bufio.Writer, snap services.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "id: %s\nevent: snapshot\ndata: %s\n\n", snap.ID, data)
}
