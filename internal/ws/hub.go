// Package ws pushes roster and chat events to connected browser clients so
// the UI does not have to re-poll /api/characters after every mutation.
package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// EventType identifies a hub payload.
type EventType string

const (
	EventCharacterCreated  EventType = "CharacterCreated"
	EventCharacterUpdated  EventType = "CharacterUpdated"
	EventCharacterDeleted  EventType = "CharacterDeleted"
	EventChatTurnCompleted EventType = "ChatTurnCompleted"
)

// Event is the wire envelope sent to every connected client.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub fans events out to all connected clients. Clients whose send buffer
// is full are dropped rather than allowed to stall the broadcast loop.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

// NewHub builds a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Broadcast sends an event to every connected client. Marshal failures are
// logged and dropped; events are advisory.
func (h *Hub) Broadcast(eventType EventType, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[ws] drop %s event: %v", eventType, err)
		return
	}
	envelope, err := json.Marshal(Event{Type: eventType, Payload: body})
	if err != nil {
		log.Printf("[ws] drop %s event: %v", eventType, err)
		return
	}
	h.broadcast <- envelope
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Client represents a websocket connection.
type Client struct {
	Conn *websocket.Conn
	Hub  *Hub
	Send chan []byte
}

// NewClient returns a client ready for registration.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		Hub:  hub,
		Send: make(chan []byte, 256),
	}
}
