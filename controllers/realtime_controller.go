package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Yonurhan/MomCare-Final/pkg/logger"
	"github.com/Yonurhan/MomCare-Final/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RealtimeController struct {
	hub *services.RealtimeHub
	log *logger.Logger
}

func NewRealtimeController(hub *services.RealtimeHub, log *logger.Logger) *RealtimeController {
	return &RealtimeController{hub: hub, log: log}
}

// Subscribe upgrades the connection and keeps it registered until the client
// goes away. The server never reads application data; the read loop only
// exists to notice the close.
func (rc *RealtimeController) Subscribe(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.log.Warnw("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := &services.WSClient{UserID: userID, Conn: conn}
	rc.hub.Register(client)
	defer rc.hub.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
