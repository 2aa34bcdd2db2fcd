// Package live runs the per-page session behind the /live websocket. Opening
// the socket mounts the section tracker and the typewriter; closing it
// releases both.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/section"
	"github.com/Ahmed-3del/portfolio/internal/typewriter"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 16 << 10
	sendBuffer     = 32
)

// scrollMessage is the client's geometry report.
type scrollMessage struct {
	Type     string                    `json:"type"`
	Height   float64                   `json:"height"`
	Sections map[string]section.Bounds `json:"sections"`
}

type activeFrame struct {
	Type    string     `json:"type"`
	Section section.ID `json:"section"`
}

type typedFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Session binds one page to its own State, Tracker and Driver.
type Session struct {
	conn   *websocket.Conn
	logger *zap.Logger
	state  *section.State
	view   *Viewport
	send   chan any
}

func newSession(conn *websocket.Conn, logger *zap.Logger) *Session {
	return &Session{
		conn:   conn,
		logger: logger,
		state:  section.NewState(),
		view:   NewViewport(),
		send:   make(chan any, sendBuffer),
	}
}

// run blocks until the client goes away or ctx is cancelled.
func (s *Session) run(ctx context.Context, opts typewriter.Options, clock clockwork.Clock) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		s.writeLoop(ctx)
	}()

	emit := func(frame any) {
		select {
		case s.send <- frame:
		case <-ctx.Done():
		}
	}

	emit(activeFrame{Type: "active", Section: s.state.Active()})
	unmount := section.ForState(s.state, func(id section.ID) {
		emit(activeFrame{Type: "active", Section: id})
	}).Mount(s.view)

	driver, err := typewriter.Start(ctx, opts, clock, func(text string) {
		emit(typedFrame{Type: "typed", Text: text})
	})
	if err != nil {
		unmount()
		cancel()
		<-writerDone
		return fmt.Errorf("start typewriter: %w", err)
	}

	defer func() {
		unmount()
		cancel()
		driver.Destroy()
		<-writerDone
	}()

	return s.readLoop(ctx)
}

func (s *Session) readLoop(ctx context.Context) error {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return err
		}

		var msg scrollMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Debug("ignoring malformed live message", zap.Error(err))
			continue
		}
		switch msg.Type {
		case "scroll":
			s.view.Scroll(msg.Height, msg.Sections)
		default:
			s.logger.Debug("ignoring live message", zap.String("type", msg.Type))
		}
	}
}

// writeLoop is the only writer on the connection.
func (s *Session) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			_ = s.conn.Close()
			return
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					s.logger.Debug("live write failed", zap.Error(err))
				}
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = s.conn.Close()
				return
			}
		}
	}
}
