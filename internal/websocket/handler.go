package websocket

import (
	"log"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/mkondo/kajiboard/internal/auth"
)

// HandleWebSocket upgrades the connection and runs it as a hub client scoped
// to the authenticated household. Must sit behind RequireAuth.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		householdID := auth.HouseholdID(r.Context())
		if householdID == 0 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Allow connections from any origin (household LAN)
		})
		if err != nil {
			log.Printf("websocket: accept: %v", err)
			return
		}

		client := NewClient(hub, conn, householdID)
		client.Run(r.Context())
	}
}
