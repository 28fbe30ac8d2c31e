package orderControllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is pushed to every connected admin dashboard.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Events queued per client before it is considered stalled and dropped.
	clientQueueSize = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans order events out to websocket clients. Each client has its own
// writer goroutine, so Broadcast never waits on the network.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// GET /api/admin/orders/ws
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Websocket upgrade failed: %v", err)
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, clientQueueSize)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go cl.writePump()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(cl)
}

// writePump is the only writer on the connection.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("❌ Websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// remove unregisters cl and stops its writer. Safe to call twice.
func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[cl] {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// ClientCount reports the connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues the event for every client and returns immediately.
// A client whose queue is full is dropped. A nil hub ignores the call.
func (h *Hub) Broadcast(eventType string, order models.Order) {
	if h == nil {
		return
	}
	data, err := json.Marshal(OrderEvent{Type: eventType, Order: order})
	if err != nil {
		log.Printf("❌ Failed to encode %s event: %v", eventType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			log.Println("❌ Dropping stalled websocket client")
			delete(h.clients, cl)
			close(cl.send)
		}
	}
}
