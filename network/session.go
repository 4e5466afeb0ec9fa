package network

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// SessionID uniquely identifies a connected browser
type SessionID uint32

// Session is the display surface of one browser connection.
// The browser reports its canvas size and wheel input as JSON; frames go back as binary messages.
type Session struct {
	ID SessionID

	conn         *websocket.Conn
	maxDim       int
	writeTimeout time.Duration

	mu   sync.RWMutex
	size raster.Size

	wheel chan viewport.WheelEvent

	// Lifecycle
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// newSession wraps an accepted connection
func newSession(ctx context.Context, id SessionID, conn *websocket.Conn, cfg *Config) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		ID:           id,
		conn:         conn,
		maxDim:       cfg.MaxFrameDim,
		writeTimeout: cfg.WriteTimeout,
		wheel:        make(chan viewport.WheelEvent, cfg.WheelQueueSize),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Size returns the last canvas size reported by the browser, zero before the first report
func (s *Session) Size() raster.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Publish sends the frame to the browser. Empty frames are skipped.
func (s *Session) Publish(buf []byte, size raster.Size, origin image.Point) error {
	if size.Area() == 0 {
		return nil
	}

	msg, err := EncodeFrame(buf, size, origin)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.writeTimeout)
	defer cancel()

	if err := s.conn.Write(ctx, websocket.MessageBinary, msg); err != nil {
		return fmt.Errorf("session %d write: %w", s.ID, err)
	}
	return nil
}

// Wheel returns the wheel event stream fed by the read loop
func (s *Session) Wheel() <-chan viewport.WheelEvent {
	return s.wheel
}

// Done is closed once the session is closed
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// readLoop applies client messages until the connection fails or the session closes.
// A normal close by the browser returns nil.
func (s *Session) readLoop() error {
	for {
		var msg ClientMessage
		if err := wsjson.Read(s.ctx, s.conn, &msg); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("session %d read: %w", s.ID, err)
		}

		if err := s.handleMessage(msg); err != nil {
			return err
		}
	}
}

func (s *Session) handleMessage(msg ClientMessage) error {
	switch msg.Type {
	case ClientResize:
		size := msg.Size(s.maxDim)
		s.mu.Lock()
		s.size = size
		s.mu.Unlock()

	case ClientWheel:
		select {
		case s.wheel <- msg.WheelEvent():
		case <-s.ctx.Done():
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownInput, msg.Type)
	}
	return nil
}

// Close ends the session with the given status. Safe to call multiple times.
func (s *Session) Close(code websocket.StatusCode, reason string) {
	s.closeOnce.Do(func() {
		s.conn.Close(code, reason)
		s.cancel()
	})
}
