package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"savoria/store"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Hub pushes store change events to every connected websocket client, so
// open menu and cart views can re-fetch without polling.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 100), // Buffered to prevent blocking mutations
	}
}

// Notify queues a change event for broadcast. Events are dropped when the
// buffer is full rather than stalling the mutating request.
func (h *Hub) Notify(ev store.ChangeEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal change event: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		log.Println("Change feed buffer full, dropping event")
	}
}

// Run fans queued events out to all clients. Call once in a goroutine.
func (h *Hub) Run() {
	for message := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			err := client.WriteMessage(websocket.TextMessage, message)
			if err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}

// Handle upgrades the connection and keeps it registered until the client
// goes away. Incoming messages are ignored; the feed is one-way.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Error upgrading:", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	log.Println("Client connected:", conn.RemoteAddr())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			log.Println("Client disconnected:", conn.RemoteAddr())
			break
		}
	}
}
