package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/foodshare/foodshare-app/realtime"
	"github.com/foodshare/foodshare-app/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler -> realtime endpoint. The connection is bound to the user from
// the token, so a claim on their listing reaches them while connected. The
// gateway carries no business logic; it only feeds the presence hub.
func WSHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterUser(userID, ws)
	utils.InfoLogger.Printf("User %d registered for realtime events", userID)

	// Drain until the peer goes away; inbound frames carry no meaning here.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterSession(ws)
	ws.Close()
	utils.InfoLogger.Printf("User %d disconnected from realtime events", userID)
}
