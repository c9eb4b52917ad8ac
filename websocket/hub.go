package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/devgupta2601/tuition_hub/database"
	"github.com/devgupta2601/tuition_hub/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// The hub pushes a fresh wallet snapshot to a tutor's dashboard after every
// money-moving mutation, replacing per-view polling. One connection per
// tutor; a replaced or closed connection is always unregistered.

type Client struct {
	TutorID uuid.UUID
	Conn    *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var walletUpdates = make(chan uuid.UUID, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			if old, ok := clients[client.TutorID]; ok && old != client.Conn {
				old.Close()
			}
			clients[client.TutorID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			clientsMu.Lock()
			if conn, ok := clients[client.TutorID]; ok && conn == client.Conn {
				delete(clients, client.TutorID)
			}
			clientsMu.Unlock()
		case tutorID := <-walletUpdates:
			clientsMu.RLock()
			conn, ok := clients[tutorID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}

			summary, err := services.GetWalletSummary(database.DB, tutorID, time.Now())
			if err != nil {
				log.Printf("Error building wallet snapshot for tutor %s: %v", tutorID, err)
				continue
			}
			if err := conn.WriteJSON(summary); err != nil {
				log.Printf("Error pushing wallet snapshot to tutor %s: %v", tutorID, err)
				conn.Close()
				clientsMu.Lock()
				if c, stillThere := clients[tutorID]; stillThere && c == conn {
					delete(clients, tutorID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// NotifyWalletChanged queues a snapshot push for the tutor. Non-blocking;
// if the hub is backed up the dashboard just misses one intermediate state.
func NotifyWalletChanged(tutorID uuid.UUID) {
	select {
	case walletUpdates <- tutorID:
	default:
	}
}
