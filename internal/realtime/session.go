package realtime

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"bakery-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	sessionPing  = (pongWait * 9) / 10
	sendBuffer   = 32
	maxReadBytes = 4096
)

// NewUpgrader accepts same-origin requests, requests without an Origin header, and
// requests from allowedOrigin.
func NewUpgrader(allowedOrigin string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || origin == allowedOrigin || allowedOrigin == "*" {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// Session is one websocket client. Send never blocks; a client that cannot keep up
// loses messages and is expected to re-query.
type Session struct {
	conn *websocket.Conn
	out  chan any
	done chan struct{}
	once sync.Once
}

func Upgrade(upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request) (*Session, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &Session{
		conn: conn,
		out:  make(chan any, sendBuffer),
		done: make(chan struct{}),
	}, nil
}

func (s *Session) Send(v any) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.out <- v:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Close() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// Run pumps messages until the client disconnects or a write fails.
func (s *Session) Run() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.writePump()
	}()

	s.readPump()
	s.Close()
	wg.Wait()
}

// readPump only drains control frames; clients do not send data on the feed.
func (s *Session) readPump() {
	s.conn.SetReadLimit(maxReadBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().Debug("websocket closed", zap.Error(err))
			}
			return
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(sessionPing)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case v := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(v); err != nil {
				s.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}
