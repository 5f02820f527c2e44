package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDebug(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	SetDebug(false)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())

	SetDebug(true)
	assert.Equal(t, gin.DebugMode, gin.Mode())
}

func TestListen_AddressInUse(t *testing.T) {
	s, _ := setupServer(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	ln, err := s.Listen(busy.Addr().String())

	assert.Nil(t, ln)
	var le *ListenError
	require.True(t, errors.As(err, &le), "expected *ListenError, got %v", err)
	assert.Equal(t, busy.Addr().String(), le.Addr)
	assert.Contains(t, err.Error(), "listen on "+busy.Addr().String()+":")
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, _ := setupServer(t)
	seed(t, s, "buy milk")
	ln, err := s.Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
