package handlers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
)

// readEvent reads one server-sent event and returns its data payload.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "" && event != "":
			return event, data
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestStreamProducts(t *testing.T) {
	env := newTestEnv(t)
	env.productFeed.Publish(catalogFixture()[:2])

	srv := httptest.NewServer(env.e)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/products/stream", nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	r := bufio.NewReader(res.Body)
	event, data := readEvent(t, r)
	assert.Equal(t, "snapshot", event)
	var snapshot []models.Product
	require.NoError(t, json.Unmarshal([]byte(data), &snapshot))
	assert.Len(t, snapshot, 2)

	env.productFeed.Publish(catalogFixture())
	_, data = readEvent(t, r)
	require.NoError(t, json.Unmarshal([]byte(data), &snapshot))
	assert.Len(t, snapshot, 5)

	cancel()
	assert.Eventually(t, func() bool { return env.productFeed.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestShutdownClosesOpenStreams(t *testing.T) {
	env := newTestEnv(t)
	env.productFeed.Publish(catalogFixture())

	srv := httptest.NewUnstartedServer(env.e)
	srv.Config.RegisterOnShutdown(env.handler.CloseStreams)
	srv.Start()
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/products/stream")
	require.NoError(t, err)
	defer res.Body.Close()

	r := bufio.NewReader(res.Body)
	event, _ := readEvent(t, r)
	require.Equal(t, "snapshot", event)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, srv.Config.Shutdown(ctx))
	assert.Less(t, time.Since(start), time.Second)

	_, err = io.ReadAll(r)
	assert.NoError(t, err, "stream ends cleanly")
}
