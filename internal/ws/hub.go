package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

// EventLedgerUpdate tells open windows that stock, balances or documents changed.
const EventLedgerUpdate = "ledger_update"

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		log:        log.WithField("module", "ws"),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish queues a change message for every connected client. It never blocks: when the
// queue is full the message is dropped and clients pick the change up on their next refresh.
func (h *Hub) Publish(entity, action string, id string) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":   EventLedgerUpdate,
		"entity": entity,
		"action": action,
		"id":     id,
		"at":     time.Now().UTC(),
	})
	if err != nil {
		h.log.WithError(err).Warn("marshal ledger update")
		return
	}

	select {
	case h.Broadcast <- msg:
	default:
		h.log.WithField("entity", entity).Warn("broadcast queue full, dropping ledger update")
	}
}

// Serve is the per-connection loop mounted on the websocket route.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register <- c
	defer func() { h.Unregister <- c }()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
