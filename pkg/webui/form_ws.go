package webui

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"greetbox/pkg/form"
	"greetbox/pkg/logger"
)

const (
	wsReadLimit    = 4096
	wsPongWait     = 120 * time.Second
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

type formWSMessage struct {
	Type string `json:"type"`           // "submit", "ping"
	Name string `json:"name,omitempty"` // submitted name field
}

type formWSResponse struct {
	Type       string `json:"type"` // "mounted", "greeting", "pong", "error"
	Text       string `json:"text"`
	State      string `json:"state,omitempty"`
	Generation uint64 `json:"generation,omitempty"`
	ConnID     string `json:"conn_id,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// handleFormWS mounts one form for the lifetime of the connection. Submit
// frames feed OnSubmit; every applied greeting is pushed back as a
// "greeting" frame. Closing the socket unmounts the form.
func (s *Server) handleFormWS(c *echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("Form WS upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	connID := uuid.NewString()
	connLog := s.logger.WithFields(
		zap.String("conn_id", connID),
		zap.String("remote", c.Request().RemoteAddr),
	)

	f := s.forms.New(s.ctx, form.WithLogger(connLog))
	s.mount(connID, f, conn)
	defer s.unmount(connID)

	send := make(chan formWSResponse, 16)
	done := make(chan struct{})
	defer close(done)

	go s.writeLoop(conn, send, done, connLog)

	push := func(resp formWSResponse) {
		resp.Timestamp = time.Now().Unix()
		select {
		case send <- resp:
		case <-done:
		}
	}

	unsubscribe := f.Subscribe(func(ds form.DisplayState) {
		push(formWSResponse{
			Type:       "greeting",
			Text:       ds.GreetingText,
			State:      ds.State.String(),
			Generation: ds.Generation,
		})
	})
	defer unsubscribe()

	initial := f.State()
	push(formWSResponse{
		Type:   "mounted",
		Text:   initial.GreetingText,
		State:  initial.State.String(),
		ConnID: connID,
	})
	connLog.Debug("Form mounted")

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				connLog.Warn("Form WS read error", zap.Error(err))
			}
			return nil
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var msg formWSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			push(formWSResponse{Type: "error", Error: "invalid message format"})
			continue
		}

		switch msg.Type {
		case "submit":
			f.OnSubmit(form.NameEvent(msg.Name))
		case "ping":
			push(formWSResponse{Type: "pong"})
		default:
			push(formWSResponse{Type: "error", Error: "unknown message type: " + msg.Type})
		}
	}
}

// writeLoop owns all writes to conn.
func (s *Server) writeLoop(conn *websocket.Conn, send <-chan formWSResponse, done <-chan struct{}, log *logger.Logger) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case resp := <-send:
			data, err := json.Marshal(resp)
			if err != nil {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("Form WS write failed", zap.Error(err))
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

type mountedForm struct {
	form *form.Form
	conn *websocket.Conn
}

func (s *Server) mount(id string, f *form.Form, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted[id] = &mountedForm{form: f, conn: conn}
}

// unmount closes the form and folds its counters into the retired totals.
// It is a no-op for ids already unmounted by unmountAll.
func (s *Server) unmount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mounted[id]
	if !ok {
		return
	}
	delete(s.mounted, id)
	m.form.Close()
	s.retired = s.retired.Add(m.form.Stats())
}

// unmountAll closes every mounted form and its connection; the read loops
// then return on their own.
func (s *Server) unmountAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.mounted))
	conns := make([]*websocket.Conn, 0, len(s.mounted))
	for id, m := range s.mounted {
		ids = append(ids, id)
		conns = append(conns, m.conn)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.unmount(id)
	}
	for _, conn := range conns {
		conn.Close()
	}
	if len(ids) > 0 {
		s.logger.Info("Unmounted forms on shutdown", zap.Int("count", len(ids)))
	}
}
