package signal

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/CodeRelay/internal/app"
	"github.com/dkeye/CodeRelay/internal/app/orch"
	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	o := orch.New(app.NewRegistry(), core.NewGroups(), app.SimplePolicy{})
	ctl := NewSignalWSController(o, Options{ReadLimit: 1 << 16, PingPeriod: time.Minute, SendBuffer: 16})

	ctx, cancel := context.WithCancel(context.Background())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ctl.HandleSignal(ctx, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, o
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func read(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m map[string]any
	require.NoError(t, ws.ReadJSON(&m))
	return m
}

func send(t *testing.T, ws *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(v))
}

func TestWebsocketScenario(t *testing.T) {
	srv, o := newTestServer(t)
	a := dial(t, srv)
	b := dial(t, srv)

	send(t, a, map[string]string{"type": domain.TypeJoin, "roomId": "abc", "username": "alice"})
	joined := read(t, a)
	assert.Equal(t, domain.TypeJoined, joined["type"])
	assert.Len(t, joined["clients"], 1)
	aID := joined["connId"].(string)

	send(t, b, map[string]string{"type": domain.TypeJoin, "roomId": "abc", "username": "bob"})
	fromA := read(t, a)
	fromB := read(t, b)
	assert.Equal(t, fromA, fromB)
	assert.Len(t, fromB["clients"], 2)
	assert.Equal(t, "bob", fromB["username"])
	bID := fromB["connId"].(string)
	assert.NotEqual(t, aID, bID)

	send(t, a, map[string]string{"type": domain.TypeCodeChange, "roomId": "abc", "code": "print(1)"})
	assert.Equal(t, map[string]any{"type": domain.TypeCodeChange, "code": "print(1)"}, read(t, b))

	// the next frame A sees is its own pong, not an echo of the edit
	send(t, a, map[string]string{"type": domain.TypePing})
	assert.Equal(t, domain.TypePong, read(t, a)["type"])

	send(t, b, map[string]string{"type": domain.TypeSyncCode, "targetConnId": aID, "code": "synced"})
	assert.Equal(t, map[string]any{"type": domain.TypeCodeChange, "code": "synced"}, read(t, a))

	require.NoError(t, b.Close())
	left := read(t, a)
	assert.Equal(t, map[string]any{"type": domain.TypeDisconnected, "connId": bID, "username": "bob"}, left)

	assert.Eventually(t, func() bool {
		_, ok := o.Registry.Name(core.ConnID(bID))
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMalformedMessageStaysLocal(t *testing.T) {
	srv, _ := newTestServer(t)
	a := dial(t, srv)
	b := dial(t, srv)

	send(t, a, map[string]string{"type": domain.TypeJoin, "roomId": "abc", "username": "alice"})
	read(t, a)
	send(t, b, map[string]string{"type": domain.TypeJoin, "roomId": "abc", "username": "bob"})
	read(t, a)
	read(t, b)

	require.NoError(t, b.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, domain.TypeError, read(t, b)["type"])

	send(t, b, map[string]any{"type": domain.TypeJoin, "roomId": 42})
	assert.Equal(t, domain.TypeError, read(t, b)["type"])

	send(t, b, map[string]string{"type": domain.TypeJoin, "roomId": "abc"})
	msg := read(t, b)
	assert.Equal(t, domain.TypeError, msg["type"])
	assert.Equal(t, domain.ErrUsernameEmpty.Error(), msg["error"])

	send(t, b, map[string]string{"type": "teleport"})
	assert.Equal(t, domain.TypeError, read(t, b)["type"])

	send(t, b, map[string]string{"type": domain.TypeSyncCode, "code": "x"})
	assert.Equal(t, errMissingTarget.Error(), read(t, b)["error"])

	// b's session survives and a saw none of it
	send(t, b, map[string]string{"type": domain.TypeCodeChange, "roomId": "abc", "code": "ok"})
	assert.Equal(t, map[string]any{"type": domain.TypeCodeChange, "code": "ok"}, read(t, a))
}

func TestWsSignalConnTrySend(t *testing.T) {
	srv, _ := newTestServer(t)
	ws := dial(t, srv)

	c := &WsSignalConn{conn: ws, send: make(chan core.Frame, 1)}
	require.NoError(t, c.TrySend(core.Frame("one")))
	assert.ErrorIs(t, c.TrySend(core.Frame("two")), core.ErrBackpressure)

	c.Close()
	c.Close()
	assert.ErrorIs(t, c.TrySend(core.Frame("three")), core.ErrClosed)
}
