package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmed-3del/portfolio/internal/section"
	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

type fakeClock interface {
	clockwork.Clock
	Advance(time.Duration)
	BlockUntil(int)
}

type frame struct {
	Type    string `json:"type"`
	Section string `json:"section"`
	Text    string `json:"text"`
}

func newTestHub(t *testing.T, origins ...string) (*Hub, *httptest.Server, fakeClock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := typewriter.DefaultOptions()
	opts.Strings = []string{"Hi"}
	var fc fakeClock = clockwork.NewFakeClock()

	hub := NewHub(Options{Typewriter: opts, AllowedOrigins: origins, Clock: fc})
	r := gin.New()
	r.GET("/live", hub.Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return hub, srv, fc
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads frames until match returns true.
func readUntil(t *testing.T, conn *websocket.Conn, match func(frame) bool) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if match(f) {
			return f
		}
	}
}

func scroll(t *testing.T, conn *websocket.Conn, height float64, bounds map[string]section.Bounds) {
	t.Helper()
	msg, err := json.Marshal(scrollMessage{Type: "scroll", Height: height, Sections: bounds})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
}

func TestSessionStartsAtHome(t *testing.T) {
	_, srv, _ := newTestHub(t)
	conn := dial(t, srv)

	f := readUntil(t, conn, func(f frame) bool { return f.Type == "active" })
	assert.Equal(t, "home", f.Section)
}

func TestSessionReportsScrolledSection(t *testing.T) {
	_, srv, _ := newTestHub(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(f frame) bool { return f.Type == "active" })

	scroll(t, conn, 800, map[string]section.Bounds{
		"home":     {Top: -900, Bottom: -100},
		"about":    {Top: -100, Bottom: 700},
		"projects": {Top: 700, Bottom: 1500},
		"contact":  {Top: 1500, Bottom: 2300},
	})

	f := readUntil(t, conn, func(f frame) bool { return f.Type == "active" })
	assert.Equal(t, "about", f.Section)
}

func TestSessionIgnoresMalformedMessages(t *testing.T) {
	_, srv, _ := newTestHub(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(f frame) bool { return f.Type == "active" })

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"resize"}`)))
	scroll(t, conn, 800, map[string]section.Bounds{
		"contact": {Top: 0, Bottom: 800},
		"bogus":   {Top: 0, Bottom: 800},
	})

	f := readUntil(t, conn, func(f frame) bool { return f.Type == "active" })
	assert.Equal(t, "contact", f.Section)
}

func TestSessionStreamsTypedText(t *testing.T) {
	_, srv, fc := newTestHub(t)
	conn := dial(t, srv)

	f := readUntil(t, conn, func(f frame) bool { return f.Type == "typed" })
	assert.Equal(t, "H", f.Text)

	fc.BlockUntil(1)
	fc.Advance(typewriter.DefaultOptions().TypeSpeed)
	f = readUntil(t, conn, func(f frame) bool { return f.Type == "typed" })
	assert.Equal(t, "Hi", f.Text)
}

// blockUntil waits for the fake clock to hold exactly n timers.
func blockUntil(t *testing.T, fc fakeClock, n int) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fc.BlockUntil(n)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("fake clock never reached %d pending timers", n)
	}
}

func TestClosingSocketUnmountsSession(t *testing.T) {
	hub, srv, fc := newTestHub(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(f frame) bool { return f.Type == "typed" })
	assert.EqualValues(t, 1, hub.Active())
	blockUntil(t, fc, 1)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.Active() == 0 }, 5*time.Second, 10*time.Millisecond)

	// The driver's timer is released with the session.
	blockUntil(t, fc, 0)
	fc.Advance(time.Minute)
	blockUntil(t, fc, 0)
}

func TestHubCloseEndsSessions(t *testing.T) {
	hub, srv, _ := newTestHub(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(f frame) bool { return f.Type == "active" })

	hub.Close()
	assert.EqualValues(t, 0, hub.Active())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func TestClosedHubRejectsNewSessions(t *testing.T) {
	hub, srv, _ := newTestHub(t)
	hub.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.EqualValues(t, 0, hub.Active())
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	_, srv, _ := newTestHub(t, "https://example.com")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.test"}})
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://example.com"}})
	require.NoError(t, err)
	conn.Close()
}

func TestViewportDropsUnknownSections(t *testing.T) {
	v := NewViewport()
	calls := 0
	remove := v.OnScroll(func() { calls++ })

	v.Scroll(600, map[string]section.Bounds{"about": {Top: 0, Bottom: 600}, "footer": {Top: 600, Bottom: 700}})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 600.0, v.Height())
	_, ok := v.Bounds(section.About)
	assert.True(t, ok)
	_, ok = v.Bounds(section.Home)
	assert.False(t, ok)

	v.Scroll(600, nil)
	_, ok = v.Bounds(section.About)
	assert.False(t, ok)

	remove()
	v.Scroll(600, nil)
	assert.Equal(t, 2, calls)
}
