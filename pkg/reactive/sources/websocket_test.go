package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vnykmshr/rxflow/internal/testutil"
	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// wsServer starts a server that accepts one WebSocket per request and hands
// it to handle.
func wsServer(t *testing.T, handle func(ctx context.Context, conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := websocket.Accept(w, req, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		defer func() { _ = conn.CloseNow() }()
		handle(req.Context(), conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketMessagesThenNormalClose(t *testing.T) {
	url := wsServer(t, func(ctx context.Context, conn *websocket.Conn) {
		for _, msg := range []string{"a", "b", "c"} {
			if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
				return
			}
		}
		_ = conn.Close(websocket.StatusNormalClosure, "done")
	})

	src, err := WebSocket(context.Background(), url)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := observable.Collect(ctx, observable.Map(func(b []byte) string { return string(b) })(src))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, got, []string{"a", "b", "c"})
}

func TestWebSocketAbnormalClose(t *testing.T) {
	url := wsServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_ = conn.Write(ctx, websocket.MessageBinary, []byte{1})
		_ = conn.Close(websocket.StatusInternalError, "backend down")
	})

	src, err := WebSocket(context.Background(), url)
	testutil.AssertNoError(t, err)

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got, err := observable.Collect(ctx, src)
	testutil.AssertEqual(t, len(got), 1)

	var opErr *rferrors.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *OperationError, got %v", err)
	}
	testutil.AssertEqual(t, opErr.Operation, "websocket.read")
	testutil.AssertEqual(t, websocket.CloseStatus(err), websocket.StatusInternalError)
}

func TestWebSocketUnsubscribeClosesConnection(t *testing.T) {
	serverDone := make(chan websocket.StatusCode, 1)
	url := wsServer(t, func(ctx context.Context, conn *websocket.Conn) {
		_ = conn.Write(ctx, websocket.MessageText, []byte("hello"))
		_, _, err := conn.Read(ctx)
		serverDone <- websocket.CloseStatus(err)
	})

	src, err := WebSocket(context.Background(), url)
	testutil.AssertNoError(t, err)

	rec := testutil.NewRecorder[[]byte]()
	sub := src.Subscribe(rec)
	testutil.Eventually(t, func() bool { return rec.Len() == 1 }, testutil.TestTimeout, time.Millisecond)

	if err := sub.Unsubscribe(); err != nil {
		t.Logf("close handshake: %v", err)
	}
	testutil.AssertEqual(t, len(rec.Events()), 1)

	select {
	case code := <-serverDone:
		testutil.AssertEqual(t, code, websocket.StatusNormalClosure)
	case <-time.After(testutil.TestTimeout):
		t.Fatal("server never saw the close frame")
	}
}

func TestWebSocketDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	src, err := WebSocket(context.Background(), url)
	testutil.AssertNoError(t, err)

	rec := testutil.NewRecorder[[]byte]()
	src.Subscribe(rec)

	select {
	case <-rec.Terminated():
	case <-time.After(testutil.TestTimeout):
		t.Fatal("dial failure was not delivered")
	}
	var opErr *rferrors.OperationError
	if !errors.As(rec.Err(), &opErr) {
		t.Fatalf("expected *OperationError, got %v", rec.Err())
	}
	testutil.AssertEqual(t, opErr.Operation, "websocket.dial")
}

func TestWebSocketValidation(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		url  string
		opts []WebSocketOption
	}{
		{"nil context", nil, "ws://localhost:1", nil},
		{"empty url", context.Background(), "", nil},
		{"relative url", context.Background(), "/stream", nil},
		{"unsupported scheme", context.Background(), "ftp://localhost/stream", nil},
		{"zero read limit", context.Background(), "ws://localhost:1", []WebSocketOption{WithReadLimit(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WebSocket(tt.ctx, tt.url, tt.opts...)
			if !rferrors.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
