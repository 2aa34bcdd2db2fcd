package live

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

type Options struct {
	Typewriter typewriter.Options
	// AllowedOrigins lists accepted Origin headers. Empty means same host only.
	AllowedOrigins []string
	Clock          clockwork.Clock
	Logger         *zap.Logger
}

// Hub accepts live connections and tears every session down on Close.
type Hub struct {
	opts     Options
	upgrader websocket.Upgrader
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	active atomic.Int64
}

func NewHub(opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
	if len(opts.AllowedOrigins) > 0 {
		allowed := make(map[string]struct{}, len(opts.AllowedOrigins))
		for _, o := range opts.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			_, ok := allowed[r.Header.Get("Origin")]
			return ok
		}
	}
	return h
}

// Active reports the number of mounted sessions.
func (h *Hub) Active() int64 { return h.active.Load() }

// acquire registers a session unless the hub is closed.
func (h *Hub) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.wg.Add(1)
	return true
}

// Handle upgrades the request and serves the session until it closes.
func (h *Hub) Handle(c *gin.Context) {
	if !h.acquire() {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	defer h.wg.Done()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("live upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := h.logger.With(zap.String("session", id))

	h.active.Add(1)
	defer h.active.Add(-1)

	logger.Debug("live session mounted")
	if err := newSession(conn, logger).run(h.ctx, h.opts.Typewriter, h.opts.Clock); err != nil {
		logger.Warn("live session ended", zap.Error(err))
		return
	}
	logger.Debug("live session unmounted")
}

// Close unmounts every session and waits for them to finish.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	h.cancel()
	h.mu.Unlock()
	h.wg.Wait()
}
