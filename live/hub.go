// Package live pushes change notifications to connected browsers over
// websockets so open pages refresh without polling.
package live

import (
	"encoding/json"
	"log"
)

// Event types broadcast by the services layer.
const (
	EventPlayersUpdated  = "PLAYERS_UPDATED"
	EventMatchUpdated    = "MATCH_UPDATED"
	EventPaymentsUpdated = "PAYMENTS_UPDATED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run owns the client set; call it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("live: client registered, %d connected", len(h.clients))

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("live: client unregistered, %d connected", len(h.clients))
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Notify marshals an event and queues it for every connected client. Safe to
// call from any goroutine.
func (h *Hub) Notify(eventType string, payload interface{}) {
	message, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("live: failed to marshal %s event: %v", eventType, err)
		return
	}
	h.Broadcast <- message
}
