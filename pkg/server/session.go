package server

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/sitekit/pkg/page"
)

// Message is a client event in a live session.
type Message struct {
	Type      string   `json:"type"`
	Target    string   `json:"target,omitempty"`
	Value     string   `json:"value,omitempty"`
	ScrollY   *float64 `json:"scrollY,omitempty"`
	ElapsedMs *int64   `json:"elapsedMs,omitempty"`
}

// Reply is sent after every message.
type Reply struct {
	Session string      `json:"session"`
	HTML    string      `json:"html"`
	Fields  []FieldJSON `json:"fields"`
	Error   string      `json:"error,omitempty"`

	// Reload asks the client to reconnect because the page changed.
	Reload bool `json:"reload,omitempty"`
}

// Session is one live connection with its own mounted page.
type Session struct {
	ID string

	conn    *websocket.Conn
	writeMu sync.Mutex
	page    *page.Page
	last    time.Time
	logger  *slog.Logger
}

func newSession(conn *websocket.Conn, p *page.Page, logger *slog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:     id,
		conn:   conn,
		page:   p,
		last:   time.Now(),
		logger: logger.With("session", id),
	}
}

// Page returns the session's page.
func (s *Session) Page() *page.Page { return s.page }

// Apply advances the session clock and performs the message's action.
func (s *Session) Apply(msg Message) error {
	now := time.Now()
	elapsed := now.Sub(s.last)
	if msg.ElapsedMs != nil {
		elapsed = time.Duration(*msg.ElapsedMs) * time.Millisecond
	}
	s.last = now

	doc := s.page.Doc
	win := doc.Window()
	if elapsed > 0 {
		win.Advance(elapsed)
	}

	switch msg.Type {
	case "tick":
		return nil
	case "scroll":
		if msg.ScrollY == nil {
			return fmt.Errorf("scroll without scrollY")
		}
		win.ScrollTo(*msg.ScrollY)
		return nil
	case "click", "blur", "input", "submit":
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}

	el := doc.Query(msg.Target)
	if el == nil {
		return fmt.Errorf("target %q not found", msg.Target)
	}
	switch msg.Type {
	case "click":
		el.Click()
	case "blur":
		el.Blur()
	case "input":
		el.SetValue(msg.Value)
	case "submit":
		form := el.Closest("form")
		if form == nil {
			return fmt.Errorf("target %q is not in a form", msg.Target)
		}
		form.RequestSubmit()
	}
	return nil
}

// Snapshot renders the current page state.
func (s *Session) Snapshot() Reply {
	return Reply{
		Session: s.ID,
		HTML:    s.page.Doc.HTML(),
		Fields:  pageFields(s.page),
	}
}

// Send writes a reply. It is safe to call from any goroutine.
func (s *Session) Send(reply Reply) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(reply)
}

// Close closes the connection.
func (s *Session) Close() {
	_ = s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	_ = s.conn.Close()
}

// SessionManager tracks live sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

func (sm *SessionManager) add(s *Session) {
	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()
}

func (sm *SessionManager) remove(id string) {
	sm.mu.Lock()
	delete(sm.sessions, id)
	sm.mu.Unlock()
}

// Get returns a session by id, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Broadcast sends reply to every live session with its session id filled
// in and returns how many sends succeeded.
func (sm *SessionManager) Broadcast(reply Reply) int {
	sent := 0
	for _, s := range sm.snapshot() {
		r := reply
		r.Session = s.ID
		if err := s.Send(r); err != nil {
			s.logger.Warn("broadcast failed", "error", err)
			continue
		}
		sent++
	}
	return sent
}

func (sm *SessionManager) snapshot() []*Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// Shutdown closes every live session.
func (sm *SessionManager) Shutdown() {
	sessions := sm.snapshot()
	for _, s := range sessions {
		s.Close()
	}
	sm.logger.Info("sessions closed", "count", len(sessions))
}
