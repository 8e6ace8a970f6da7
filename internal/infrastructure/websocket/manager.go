package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client represents one authenticated WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks active connections and per-conversation rooms. A client
// joins the room of each conversation view it has open; events for that
// conversation are pushed to the room members. Delivery is at-most-once:
// a dropped connection loses in-flight events and the client resyncs by
// re-fetching history after it reconnects.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]bool
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]bool),

		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.UserID]; ok {
					close(old.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					for _, members := range m.rooms {
						delete(members, client.UserID)
					}
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// JoinRoom subscribes userID to events for conversationID.
func (m *Manager) JoinRoom(conversationID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.rooms[conversationID]
	if !ok {
		members = make(map[string]bool)
		m.rooms[conversationID] = members
	}
	members[userID] = true
}

// LeaveRoom tears down userID's subscription for conversationID.
func (m *Manager) LeaveRoom(conversationID, userID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[conversationID]; ok {
		delete(members, userID)
		if len(members) == 0 {
			delete(m.rooms, conversationID)
		}
	}
}

// SendToUser pushes a payload to one user's connection, if any. The read
// lock is held across the send: the hub closes a client's channel only
// under the write lock, so the channel cannot close mid-send.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- message:
	default:
		// Slow consumer; drop the event rather than block the caller.
		logger.Warn("Dropping WebSocket event for slow client %s", userID)
	}
}

// SendToConversation pushes a payload to every room member except exclude.
func (m *Manager) SendToConversation(conversationID, exclude string, message []byte) {
	m.mutex.RLock()
	var targets []string
	for userID := range m.rooms[conversationID] {
		if userID != exclude {
			targets = append(targets, userID)
		}
	}
	m.mutex.RUnlock()

	for _, userID := range targets {
		m.SendToUser(userID, message)
	}
}

// IsInRoom reports whether userID currently has conversationID open.
func (m *Manager) IsInRoom(conversationID, userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.rooms[conversationID][userID]
}

// ReadPump reads client frames until the connection drops.
func (c *Client) ReadPump(m *Manager, handler *EventHandler) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		handler.HandleClientEvent(c, message)
	}
}

// WritePump writes queued payloads and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("WebSocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
