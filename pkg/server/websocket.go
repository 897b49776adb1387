package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// sessionEventTypes bounds the label values of the session event metric.
var sessionEventTypes = map[string]bool{
	"tick":   true,
	"scroll": true,
	"click":  true,
	"blur":   true,
	"input":  true,
	"submit": true,
}

// HandleWebSocket upgrades the request and runs a live session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		if s.metrics != nil {
			s.metrics.WebSocketError("upgrade")
		}
		return
	}

	p, err := s.newPage(s.observers(r.Context()))
	if err != nil {
		s.logger.Error("page mount failed", "error", err)
		_ = conn.Close()
		return
	}

	sess := newSession(conn, p, s.logger)
	s.sessions.add(sess)
	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	sess.logger.Info("session started", "remote", r.RemoteAddr)

	defer func() {
		s.sessions.remove(sess.ID)
		p.Detach()
		_ = conn.Close()
		if s.metrics != nil {
			s.metrics.SessionEnded()
		}
		sess.logger.Info("session ended")
	}()

	conn.SetReadLimit(s.config.MaxMessageSize)
	if err := s.send(sess, sess.Snapshot()); err != nil {
		return
	}
	s.readLoop(sess)
}

// readLoop applies client messages in order and replies to each one.
func (s *Server) readLoop(sess *Session) {
	for {
		_ = sess.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
				if s.metrics != nil {
					s.metrics.WebSocketError("read")
				}
			}
			return
		}

		var msg Message
		var reply Reply
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.logger.Warn("message decode error", "error", err)
			if s.metrics != nil {
				s.metrics.WebSocketError("decode")
			}
			reply = sess.Snapshot()
			reply.Error = err.Error()
		} else {
			if s.metrics != nil {
				typ := msg.Type
				if !sessionEventTypes[typ] {
					typ = "unknown"
				}
				s.metrics.SessionEvent(typ)
			}
			applyErr := sess.Apply(msg)
			reply = sess.Snapshot()
			if applyErr != nil {
				sess.logger.Debug("message rejected", "type", msg.Type, "error", applyErr)
				reply.Error = applyErr.Error()
			}
		}

		if err := s.send(sess, reply); err != nil {
			return
		}
	}
}

func (s *Server) send(sess *Session, reply Reply) error {
	if err := sess.Send(reply); err != nil {
		sess.logger.Error("write error", "error", err)
		if s.metrics != nil {
			s.metrics.WebSocketError("write")
		}
		return err
	}
	return nil
}
