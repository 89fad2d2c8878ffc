package handlers

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"campusfix/internal/realtime"
)

// WSHandler attaches dashboard clients to the broadcast hub.
type WSHandler struct {
	hub           *realtime.Hub
	allowedOrigin string
}

func NewWSHandler(hub *realtime.Hub, allowedOrigin string) *WSHandler {
	return &WSHandler{hub: hub, allowedOrigin: allowedOrigin}
}

// GET /ws
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := realtime.Upgrade(c.Writer, c.Request, h.allowedOrigin)
	if err != nil {
		log.Printf("[ws][upgrade][err] from=%s: %v", c.ClientIP(), err)
		return
	}
	h.hub.Attach(conn)
	log.Printf("[ws][attach] from=%s clients=%d", c.ClientIP(), h.hub.ClientCount())

	// Push only; drain the read side so control frames get answered and the
	// peer close is noticed.
	defer func() {
		h.hub.Detach(conn)
		log.Printf("[ws][detach] from=%s clients=%d", c.ClientIP(), h.hub.ClientCount())
	}()
	for {
		if _, err := conn.ReadMessage(); err != nil {
			if err != io.EOF {
				log.Printf("[ws][read][err] from=%s: %v", c.ClientIP(), err)
			}
			return
		}
	}
}
