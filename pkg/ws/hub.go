package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

type Connectioner interface {
	SendMessage(message []byte) error
	Close() error
}

type HubOptions struct {
	Logger       *logrus.Logger
	CheckOrigin  func(r *http.Request) bool
	OnConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	OnDisconnect func(conn *Connection)
}

type Huber interface {
	http.Handler
	JoinChannel(channel string, conn *Connection)
	LeaveChannel(channel string, conn *Connection)
	ConnectionsInChannel(channel string) []*Connection
	BroadcastToChannel(channel string, message []byte)
}

func NewHub(opts *HubOptions) *Hub {
	return &Hub{
		logger:       opts.Logger,
		onConnect:    opts.OnConnect,
		onDisconnect: opts.OnDisconnect,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     opts.CheckOrigin,
		},
		channels: make(map[string]map[*Connection]struct{}),
	}
}

type Hub struct {
	logger       *logrus.Logger
	upgrader     websocket.Upgrader
	onConnect    func(r *http.Request, hub *Hub, conn *Connection) error
	onDisconnect func(conn *Connection)

	mu       sync.RWMutex
	channels map[string]map[*Connection]struct{}
}

type Connection struct {
	ws *websocket.Conn

	writeMu sync.Mutex
	closed  bool
}

func (c *Connection) SendMessage(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, message)
}

func (c *Connection) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ws.Close()
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("websocket upgrade failed")
		return
	}
	conn := &Connection{ws: ws}
	if h.onConnect != nil {
		if err := h.onConnect(r, h, conn); err != nil {
			h.logger.WithError(err).Error("websocket connect callback failed")
			_ = conn.Close()
			return
		}
	}
	go h.readPump(conn)
	go h.pingLoop(conn)
}

// readPump drains incoming frames; the hub is broadcast-only so payloads
// are discarded.
func (h *Hub) readPump(conn *Connection) {
	defer h.drop(conn)
	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) pingLoop(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		conn.writeMu.Lock()
		if conn.closed {
			conn.writeMu.Unlock()
			return
		}
		_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.ws.WriteMessage(websocket.PingMessage, nil)
		conn.writeMu.Unlock()
		if err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) drop(conn *Connection) {
	h.mu.Lock()
	for _, conns := range h.channels {
		delete(conns, conn)
	}
	h.mu.Unlock()
	_ = conn.Close()
	if h.onDisconnect != nil {
		h.onDisconnect(conn)
	}
}

func (h *Hub) JoinChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.channels[channel]
	if !ok {
		conns = make(map[*Connection]struct{})
		h.channels[channel] = conns
	}
	conns[conn] = struct{}{}
}

func (h *Hub) LeaveChannel(channel string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.channels[channel], conn)
}

func (h *Hub) ConnectionsInChannel(channel string) []*Connection {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := make([]*Connection, 0, len(h.channels[channel]))
	for conn := range h.channels[channel] {
		conns = append(conns, conn)
	}
	return conns
}

func (h *Hub) BroadcastToChannel(channel string, message []byte) {
	for _, conn := range h.ConnectionsInChannel(channel) {
		if err := conn.SendMessage(message); err != nil {
			h.logger.WithError(err).Warn("websocket send failed, dropping connection")
			h.drop(conn)
		}
	}
}
