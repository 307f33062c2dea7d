// Package livecoach keeps a streaming text conversation with the live model
// used as a journaling companion.
package livecoach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSetupTimeout = 10 * time.Second

	systemInstruction = "You are a calm burnout journaling companion. Respond with one concise reflection and one practical next step."
	temperature       = 0.4
	maxOutputTokens   = 280
)

var (
	ErrSetupTimeout       = errors.New("livecoach: timed out while setting up the live session")
	ErrClosedBeforeSetup  = errors.New("livecoach: connection closed before setup completed")
	ErrNotConnected       = errors.New("livecoach: not connected")
	ErrClosed             = errors.New("livecoach: session closed")
	errMissingCredentials = errors.New("livecoach: live session has no token or endpoint")
)

// ServerError is an error message pushed by the model server.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return "livecoach: " + e.Message }

// SessionSource issues single-use live credentials.
type SessionSource interface {
	CreateLiveSession(ctx context.Context) (*domain.LiveSession, error)
}

type Option func(*Session)

func WithSetupTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.setupTimeout = d
		}
	}
}

func WithDialer(d *websocket.Dialer) Option {
	return func(s *Session) { s.dialer = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOnPartial receives the reply accumulated so far each time new text streams in.
func WithOnPartial(fn func(string)) Option {
	return func(s *Session) { s.onPartial = fn }
}

// WithOnReply receives each completed, trimmed reply.
func WithOnReply(fn func(string)) Option {
	return func(s *Session) { s.onReply = fn }
}

// WithOnError receives errors reported by the server after setup.
func WithOnError(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// Session is a single live conversation. All methods are safe for concurrent use.
type Session struct {
	source       SessionSource
	dialer       *websocket.Dialer
	setupTimeout time.Duration
	logger       *slog.Logger

	onPartial func(string)
	onReply   func(string)
	onError   func(error)

	connect singleflight.Group
	writeMu sync.Mutex

	mu      sync.Mutex
	conn    *websocket.Conn
	pending string
	closed  bool
}

func New(source SessionSource, opts ...Option) *Session {
	s := &Session{
		source:       source,
		dialer:       websocket.DefaultDialer,
		setupTimeout: DefaultSetupTimeout,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type setupMessage struct {
	Setup struct {
		Model            string `json:"model"`
		GenerationConfig struct {
			ResponseModalities []string `json:"responseModalities"`
			Temperature        float64  `json:"temperature"`
			MaxOutputTokens    int      `json:"maxOutputTokens"`
		} `json:"generationConfig"`
		SystemInstruction content `json:"systemInstruction"`
	} `json:"setup"`
}

type clientContentMessage struct {
	ClientContent struct {
		Turns        []content `json:"turns"`
		TurnComplete bool      `json:"turnComplete"`
	} `json:"clientContent"`
}

type serverMessage struct {
	SetupComplete json.RawMessage `json:"setupComplete"`
	ServerContent *struct {
		ModelTurn *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"modelTurn"`
		TurnComplete bool `json:"turnComplete"`
	} `json:"serverContent"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (m *serverMessage) text() string {
	if m.ServerContent == nil || m.ServerContent.ModelTurn == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range m.ServerContent.ModelTurn.Parts {
		if p.Text != nil {
			b.WriteString(*p.Text)
		}
	}
	return b.String()
}

// Connected reports whether setup has completed and the socket is still open.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Connect opens the socket and completes setup. It returns immediately when
// already connected; concurrent callers share one attempt.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.conn != nil {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	_, err, _ := s.connect.Do("connect", func() (any, error) {
		return nil, s.dial(ctx)
	})
	return err
}

func (s *Session) dial(ctx context.Context) error {
	if s.Connected() {
		return nil
	}

	live, err := s.source.CreateLiveSession(ctx)
	if err != nil {
		return fmt.Errorf("livecoach: create live session: %w", err)
	}
	if live.Token == "" || live.WSEndpoint == "" {
		return errMissingCredentials
	}

	endpoint := live.WSEndpoint + "?access_token=" + url.QueryEscape(live.Token)
	conn, _, err := s.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("livecoach: websocket connection failed: %w", err)
	}

	if err := s.setup(ctx, conn, live.Model); err != nil {
		conn.Close()
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return ErrClosed
	}
	s.conn = conn
	s.pending = ""
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Live coach connected", slog.String("model", live.Model))
	go s.readLoop(conn)
	return nil
}

func (s *Session) setup(ctx context.Context, conn *websocket.Conn, model string) error {
	var msg setupMessage
	msg.Setup.Model = model
	msg.Setup.GenerationConfig.ResponseModalities = []string{"TEXT"}
	msg.Setup.GenerationConfig.Temperature = temperature
	msg.Setup.GenerationConfig.MaxOutputTokens = maxOutputTokens
	msg.Setup.SystemInstruction = content{Parts: []part{{Text: systemInstruction}}}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("livecoach: send setup: %w", err)
	}

	deadline := time.Now().Add(s.setupTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("livecoach: set deadline: %w", err)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return ErrSetupTimeout
			}
			return fmt.Errorf("%w: %v", ErrClosedBeforeSetup, err)
		}
		var m serverMessage
		if json.Unmarshal(data, &m) != nil {
			continue
		}
		if m.SetupComplete != nil {
			return conn.SetReadDeadline(time.Time{})
		}
		if m.Error != nil && m.Error.Message != "" {
			return &ServerError{Message: m.Error.Message}
		}
	}
}

func (s *Session) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			dropped := s.conn == conn
			if dropped {
				s.conn = nil
			}
			s.mu.Unlock()
			if dropped {
				s.logger.Warn("Live coach connection closed", slog.Any("error", err))
			}
			return
		}
		s.handle(conn, data)
	}
}

func (s *Session) handle(conn *websocket.Conn, data []byte) {
	var m serverMessage
	if err := json.Unmarshal(data, &m); err != nil {
		// keepalives and unknown control frames
		return
	}

	if m.Error != nil && m.Error.Message != "" {
		s.logger.Warn("Live coach server error", slog.String("message", m.Error.Message))
		if s.onError != nil {
			s.onError(&ServerError{Message: m.Error.Message})
		}
		return
	}

	var partial, reply string
	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		return
	}
	if next := m.text(); next != "" {
		if strings.HasPrefix(next, s.pending) {
			s.pending = next
		} else {
			s.pending += next
		}
		partial = s.pending
	}
	complete := m.ServerContent != nil && m.ServerContent.TurnComplete
	if complete {
		reply = strings.TrimSpace(s.pending)
		s.pending = ""
	}
	s.mu.Unlock()

	if partial != "" && s.onPartial != nil {
		s.onPartial(partial)
	}
	if reply != "" && s.onReply != nil {
		s.onReply(reply)
	}
}

// SendTurn sends text as a complete user turn and discards any partial reply.
func (s *Session) SendTurn(text string) error {
	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.pending = ""
	s.mu.Unlock()

	var msg clientContentMessage
	msg.ClientContent.Turns = []content{{Role: "user", Parts: []part{{Text: text}}}}
	msg.ClientContent.TurnComplete = true

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("livecoach: send turn: %w", err)
	}
	return nil
}

// Close tears the connection down. The session cannot be reused.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.pending = ""
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	s.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return conn.Close()
}
