package controllers

import (
	"net/http"
	"time"

	"github.com/william01alltech-hue/my-health-app/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeController upgrades UI clients onto the event hub, where ledger
// changes and analysis start/finish events are pushed.
type RealtimeController struct {
	Hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	// local single-user tool; the UI is served from localhost
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (rc *RealtimeController) EventsWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{Conn: conn}
	rc.Hub.Register(cl)

	// ping to keep connections alive through some proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				rc.Hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.Unregister(cl)
			return
		}
	}
}
