package handler_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orders-hertz/biz/dal/db"
	"orders-hertz/biz/event"
	"orders-hertz/biz/handler"
	"orders-hertz/biz/model"
	"orders-hertz/biz/router"
	"orders-hertz/biz/service"
	"orders-hertz/conf"
	"orders-hertz/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// startStreamServer runs the full middleware chain, gzip included, on a
// real listener so the WebSocket upgrade goes over the wire.
func startStreamServer(t *testing.T) (string, *event.Hub) {
	store, err := db.Open(conf.Database{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "orders.db"),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)

	hub, err := event.NewHub(4)
	require.NoError(t, err)

	addr := freeAddr(t)
	h := server.New(server.WithHostPorts(addr), server.WithExitWaitTime(time.Second))
	middleware.Register(h, conf.Hertz{EnableGzip: true})
	svc := service.NewOrderService(db.NewOrderRepo(store), hub)
	router.Register(h, handler.NewOrderHandler(svc), handler.NewStreamHandler(hub))

	go func() { _ = h.Run() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = h.Shutdown(ctx)
		_ = hub.Close()
		_ = store.Close()
	})
	return addr, hub
}

func TestStreamDeliversCreatedOrders(t *testing.T) {
	addr, hub := startStreamServer(t)

	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		c, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+middleware.StreamPath, nil)
		if err != nil {
			return false
		}
		assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
		conn = c
		return true
	}, 3*time.Second, 20*time.Millisecond)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post("http://"+addr+"/orders/", "application/json",
		strings.NewReader(`{"symbol":"AAPL","price":150.25,"quantity":10,"order_type":"BUY"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	kind, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)

	var ev model.OrderCreatedEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, model.EventOrderCreated, ev.Type)
	assert.Equal(t, model.Order{ID: 1, Symbol: "AAPL", Price: 150.25, Quantity: 10, OrderType: "BUY"}, ev.Order)
}

func TestStreamSubscriberRemovedOnDisconnect(t *testing.T) {
	addr, hub := startStreamServer(t)

	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		c, _, err := websocket.DefaultDialer.Dial("ws://"+addr+middleware.StreamPath, nil)
		if err != nil {
			return false
		}
		conn = c
		return true
	}, 3*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
