package sources

import (
	"context"
	"sync/atomic"

	"github.com/coder/websocket"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
	"github.com/vnykmshr/rxflow/pkg/common/validation"
	"github.com/vnykmshr/rxflow/pkg/reactive/observable"
)

// WebSocketConfig holds the settings of a WebSocket source.
type WebSocketConfig struct {
	// DialOptions are passed to websocket.Dial unchanged. Nil uses the
	// library defaults.
	DialOptions *websocket.DialOptions

	// ReadLimit is the maximum message size in bytes.
	ReadLimit int64
}

// DefaultWebSocketConfig returns the default WebSocket settings.
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{ReadLimit: 1 << 20}
}

// WebSocketOption configures a WebSocket source.
type WebSocketOption func(*WebSocketConfig)

// WithDialOptions sets the options used to dial the server.
func WithDialOptions(opts *websocket.DialOptions) WebSocketOption {
	return func(c *WebSocketConfig) {
		c.DialOptions = opts
	}
}

// WithReadLimit sets the maximum message size in bytes.
func WithReadLimit(n int64) WebSocketOption {
	return func(c *WebSocketConfig) {
		c.ReadLimit = n
	}
}

// WebSocket dials url on subscription and emits the payload of every
// message the server sends. A normal close frame from the server completes
// the stream; any other read or dial failure ends it with an
// *errors.OperationError. Cancelling ctx ends every subscription with the
// context error. Releasing the subscription closes the connection with
// websocket.StatusNormalClosure.
func WebSocket(ctx context.Context, url string, opts ...WebSocketOption) (*observable.Observable[[]byte], error) {
	if err := validation.ValidateNotNil(module, "context", ctx); err != nil {
		return nil, err
	}
	if err := validation.ValidateURL(module, "url", url, "ws", "wss", "http", "https"); err != nil {
		return nil, err
	}
	cfg := DefaultWebSocketConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validation.ValidatePositive(module, "readLimit", cfg.ReadLimit); err != nil {
		return nil, err
	}

	return observable.New(func(observer observable.Observer[[]byte]) observable.Teardown {
		var current atomic.Pointer[websocket.Conn]

		release := func() error {
			if conn := current.Swap(nil); conn != nil {
				return conn.Close(websocket.StatusNormalClosure, "")
			}
			return nil
		}

		return spawn(ctx, observer, release, func(ctx context.Context, emit func([]byte)) error {
			conn, _, err := websocket.Dial(ctx, url, cfg.DialOptions)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return rferrors.NewOperationError(module, "websocket.dial", err).WithContext(url)
			}
			conn.SetReadLimit(cfg.ReadLimit)
			current.Store(conn)
			defer func() {
				if current.CompareAndSwap(conn, nil) {
					_ = conn.CloseNow()
				}
			}()

			for {
				_, data, err := conn.Read(ctx)
				if err != nil {
					if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
						return nil
					}
					if ctx.Err() != nil {
						return ctx.Err()
					}
					return rferrors.NewOperationError(module, "websocket.read", err).WithContext(url)
				}
				emit(data)
			}
		})
	}), nil
}
