package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/whiteboard/internal/domain"
)

func TestNewServeStack(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Setup
	c, dir := newProjectContainer(t, "")
	outlinePath := filepath.Join(dir, "todo.txt")
	require.NoError(t, os.WriteFile(outlinePath, []byte("a id:1\n"), 0o600))

	stack, err := newServeStack(c)
	require.NoError(t, err)
	t.Cleanup(stack.hub.Close)
	require.NotNil(t, stack.watcher)

	srv := httptest.NewServer(stack.server.Handler())
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return stack.hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	// Execute
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/tasks/1", strings.NewReader(`{"status":"done"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	// Assert
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data, err := os.ReadFile(outlinePath)
	require.NoError(t, err)
	assert.Equal(t, "x a id:1\n", string(data))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev domain.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, domain.EventOutlineChanged, ev.Type)
	assert.Equal(t, "1", ev.TaskID)
	assert.Equal(t, domain.SourceWeb, ev.Source)
}

func TestNewServeStack_WatchDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := newProjectContainer(t, "[server]\nwatch = false\n")

	stack, err := newServeStack(c)

	require.NoError(t, err)
	t.Cleanup(stack.hub.Close)
	assert.Nil(t, stack.watcher)

	srv := httptest.NewServer(stack.server.Handler())
	t.Cleanup(srv.Close)
	res, err := http.Get(srv.URL + "/api/schema")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
