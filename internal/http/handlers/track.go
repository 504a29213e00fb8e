package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"gatepass/internal/geocode"
	"gatepass/internal/http/middleware"
	"gatepass/internal/simulation"
	"gatepass/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var trackUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type trackFrame struct {
	Error string `json:"error,omitempty"`
	*simulation.Frame
}

// GET /api/track?from=<place>&to=<place> — WebSocket stream of simulation
// frames. The run belongs to this connection: teardown cancels it, and a
// new connection gets a fresh run against fresh bounds.
func Track(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		RespondError(c, http.StatusBadRequest, "from and to are required", nil)
		return
	}

	reqID := middleware.GetRequestID(c)

	conn, err := trackUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	client := geocode.New(envCfg().GeocoderBaseURL)
	start, end, err := client.ResolvePair(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, geocode.ErrNoCandidates) {
			// unknown place: no route, nothing to animate
			_ = conn.WriteJSON(trackFrame{Error: "route not found"})
			return
		}
		utils.LogEvent(reqID, "track", "geocode", "lookup failed: "+err.Error())
		_ = conn.WriteJSON(trackFrame{Error: "geocoder unavailable"})
		return
	}

	utils.LogEvent(reqID, "track", "start", from+" -> "+to)

	// consume client messages so closure is noticed; any read error ends
	// the run via connClosed
	connClosed := make(chan struct{})
	go func() {
		defer close(connClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	runner := &simulation.Runner{}
	frames := make(chan simulation.Frame, simulation.Steps+1)
	handle := runner.Start(c.Request.Context(), simulation.Point(start), simulation.Point(end), func(f simulation.Frame) {
		select {
		case frames <- f:
		default:
		}
	})
	defer handle.Stop()

	for {
		select {
		case <-connClosed:
			return
		case <-handle.Done():
			// drain whatever the runner emitted before finishing
			for {
				select {
				case f := <-frames:
					if err := conn.WriteJSON(trackFrame{Frame: &f}); err != nil {
						return
					}
				default:
					return
				}
			}
		case f := <-frames:
			if err := conn.WriteJSON(trackFrame{Frame: &f}); err != nil {
				return
			}
			if f.Done {
				return
			}
		}
	}
}
