package application

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/constants"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/ws"
)

const (
	ChannelAuthenticated string = "authenticated"
)

// UserChannel is the per-user broadcast channel name.
func UserChannel(usuarioID int) string {
	return fmt.Sprintf("user/%d", usuarioID)
}

type HuberOptions struct {
	Logger      *logrus.Logger
	CheckOrigin func(r *http.Request) bool
}

type Connection interface {
	ws.Connectioner
	Session() *composables.Session
}

type WsCallback func(ctx context.Context, conn Connection) error

type Huber interface {
	http.Handler
	ForEach(channel string, f WsCallback) error
	BroadcastToChannel(channel string, message []byte)
}

func NewHub(opts *HuberOptions) Huber {
	appHub := &huber{
		logger:          opts.Logger,
		connectionsMeta: make(map[*ws.Connection]*MetaInfo),
	}
	hub := ws.NewHub(&ws.HubOptions{
		Logger:       opts.Logger,
		CheckOrigin:  opts.CheckOrigin,
		OnConnect:    appHub.onConnect,
		OnDisconnect: appHub.onDisconnect,
	})
	appHub.hub = hub
	return appHub
}

type MetaInfo struct {
	Session *composables.Session
}

type huber struct {
	hub    *ws.Hub
	logger *logrus.Logger

	mu              sync.RWMutex
	connectionsMeta map[*ws.Connection]*MetaInfo
}

func (h *huber) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeHTTP(w, r)
}

func (h *huber) onConnect(r *http.Request, hub *ws.Hub, conn *ws.Connection) error {
	meta := &MetaInfo{}
	session, ok := composables.UseSession(r.Context())
	if !ok {
		// Unauthenticated connections still receive public broadcasts
		h.setMeta(conn, meta)
		return nil
	}
	meta.Session = session
	hub.JoinChannel(ChannelAuthenticated, conn)
	hub.JoinChannel(UserChannel(session.Usuario.ID), conn)
	h.setMeta(conn, meta)
	return nil
}

func (h *huber) onDisconnect(conn *ws.Connection) {
	h.mu.Lock()
	delete(h.connectionsMeta, conn)
	h.mu.Unlock()
}

func (h *huber) setMeta(conn *ws.Connection, meta *MetaInfo) {
	h.mu.Lock()
	h.connectionsMeta[conn] = meta
	h.mu.Unlock()
}

func (h *huber) meta(conn *ws.Connection) (*MetaInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	meta, ok := h.connectionsMeta[conn]
	return meta, ok
}

func (h *huber) buildContext() context.Context {
	return context.WithValue(
		context.Background(),
		constants.LoggerKey,
		logrus.NewEntry(h.logger),
	)
}

func (h *huber) ForEach(channel string, f WsCallback) error {
	ctx := h.buildContext()
	for _, conn := range h.hub.ConnectionsInChannel(channel) {
		meta, ok := h.meta(conn)
		if !ok {
			h.logger.Error("connection meta not found")
			continue
		}
		connCtx := ctx
		if meta.Session != nil {
			connCtx = composables.WithSession(ctx, meta.Session)
		}
		if err := f(connCtx, &connection{
			session: meta.Session,
			conn:    conn,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (h *huber) BroadcastToChannel(channel string, message []byte) {
	h.hub.BroadcastToChannel(channel, message)
}

type connection struct {
	session *composables.Session
	conn    ws.Connectioner
}

func (c *connection) SendMessage(message []byte) error {
	return c.conn.SendMessage(message)
}

func (c *connection) Close() error {
	return c.conn.Close()
}

func (c *connection) Session() *composables.Session {
	return c.session
}
