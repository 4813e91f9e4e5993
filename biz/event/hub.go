package event

import (
	"context"
	"fmt"
	"sync"

	"orders-hertz/biz/model"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/json"
	"github.com/hertz-contrib/websocket"
	"github.com/panjf2000/ants/v2"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscriber struct {
	mu   sync.Mutex // websocket writes are not concurrency-safe
	conn Conn
}

// Hub broadcasts order-created events to live WebSocket subscribers.
// Writes run on an ants pool so a slow client never blocks the create path.
type Hub struct {
	mu     sync.RWMutex
	subs   map[Conn]*subscriber
	pool   *ants.Pool
	closed bool
}

func NewHub(poolSize int) (*Hub, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create broadcast pool: %w", err)
	}
	return &Hub{
		subs: make(map[Conn]*subscriber),
		pool: pool,
	}, nil
}

func (h *Hub) Add(c Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[c] = &subscriber{conn: c}
	return true
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	delete(h.subs, c)
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) PublishOrderCreated(ctx context.Context, ev *model.OrderCreatedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return nil
	}
	subs := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, s := range subs {
		s := s
		if err := h.pool.Submit(func() { h.write(s, data) }); err != nil {
			hlog.CtxWarnf(ctx, "[Hub] submit broadcast failed: %v", err)
		}
	}
	return nil
}

func (h *Hub) write(s *subscriber, data []byte) {
	s.mu.Lock()
	err := s.conn.WriteMessage(websocket.TextMessage, data)
	s.mu.Unlock()
	if err != nil {
		hlog.Warnf("[Hub] drop subscriber: %v", err)
		h.Remove(s.conn)
		_ = s.conn.Close()
	}
}

// Close disconnects every subscriber and releases the pool.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[Conn]*subscriber)
	h.mu.Unlock()

	for c := range subs {
		_ = c.Close()
	}
	h.pool.Release()
	return nil
}
