package controller

import (
	"log"
	"time"

	"github.com/gofiber/websocket/v2"

	"callpilot/campaign"
)

// CampaignProgressWS streams progress snapshots to a connected
// dashboard until the campaign reaches a terminal state. One closing
// frame with running=false is always sent, so a client that connects
// while the executor is idle learns that immediately.
func CampaignProgressWS(ex *campaign.Executor) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			snapshot := ex.Status()
			if err := c.WriteJSON(snapshot); err != nil {
				log.Printf("WS: error writing progress frame: %v", err)
				return
			}
			if !snapshot.Running {
				return
			}
			<-ticker.C
		}
	}
}
