package sse

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterEmitsNamedEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.WriteEvent("progress", map[string]int{"processed": 1}))
	require.NoError(t, w.WriteKeepAlive())

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: progress\ndata: {\"processed\":1}\n\n: keepalive\n\n", rec.Body.String())
}

type plainWriter struct{ http.ResponseWriter }

func TestWriterNeedsFlusher(t *testing.T) {
	_, err := NewWriter(plainWriter{httptest.NewRecorder()})
	assert.ErrorIs(t, err, ErrStreamingUnsupported)
}

type countingWriter struct {
	n      atomic.Int32
	failAt int32
}

func (c *countingWriter) WriteKeepAlive() error {
	if c.n.Add(1) >= c.failAt {
		return errors.New("connection closed")
	}
	return nil
}

func TestTickerKeepAliveStopsOnWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	writer := &countingWriter{failAt: 3}

	k := NewTickerKeepAlive(time.Millisecond)
	stopped := k.Start(writer, logger)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("keep-alive did not stop after write error")
	}
	assert.Equal(t, int32(3), writer.n.Load())
	k.Stop()
	k.Stop()
}

func TestTickerKeepAliveStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	k := NewTickerKeepAlive(time.Hour)
	stopped := k.Start(&countingWriter{failAt: 100}, logger)

	k.Stop()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("keep-alive did not stop")
	}
}
