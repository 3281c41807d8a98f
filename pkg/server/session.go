package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Session is one live WebSocket connection with its own document.
type Session struct {
	ID string

	conn     *websocket.Conn
	config   *ServerConfig
	logger   *slog.Logger
	doc      *host.Document
	root     host.NodeID
	renderer *reconcile.Renderer
	rec      *host.Recorder

	// mu serializes passes and frame writes.
	mu     sync.Mutex
	seq    uint64
	closed atomic.Bool
	cancel context.CancelFunc
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		if s.config.Metrics != nil {
			s.config.Metrics.RecordWebSocketError("upgrade")
		}
		return
	}

	sess := s.newSession(conn)
	ctx, cancel := context.WithCancel(r.Context())
	sess.cancel = cancel
	defer cancel()

	s.sessions.add(sess)
	if s.config.Metrics != nil {
		s.config.Metrics.SessionOpened()
	}
	defer func() {
		s.sessions.remove(sess.ID)
		if s.config.Metrics != nil {
			s.config.Metrics.SessionClosed()
		}
	}()

	sess.logger.Info("session started", "remote", r.RemoteAddr)
	if err := sess.sendHello(); err != nil {
		sess.logger.Warn("hello failed", "error", err)
		sess.Close()
		return
	}
	sess.readLoop(ctx)
	sess.teardown(ctx)
	sess.logger.Info("session ended")
}

func (s *Server) newSession(conn *websocket.Conn) *Session {
	id := newSessionID()
	logger := s.logger.With("session", id)

	// The container is the first node of the document, so a client mirror
	// that creates its root first gets the same handle. The recorder starts
	// after it for the same reason.
	doc := host.NewDocument()
	root := doc.CreateElement("div", "")

	return &Session{
		ID:       id,
		conn:     conn,
		config:   s.config,
		logger:   logger,
		doc:      doc,
		root:     root,
		renderer: reconcile.New(doc, s.config.rendererOptions(logger)...),
		rec:      host.NewRecorder(doc),
	}
}

func newSessionID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Document returns the session's document. Callers must not use it while
// a pass may be running.
func (s *Session) Document() *host.Document {
	return s.doc
}

// Container returns the node the session renders into.
func (s *Session) Container() host.NodeID {
	return s.root
}

func (s *Session) sendHello() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := protocol.EncodeHello(&protocol.Hello{
		Version:   protocol.CurrentVersion,
		SessionID: s.ID,
		Container: s.root,
		NextSeq:   s.seq + 1,
	})
	return s.writeFrame(protocol.NewFrame(protocol.FrameHello, payload))
}

func (s *Session) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read error", "error", err)
				s.recordError("read")
			}
			return
		}

		switch mt {
		case websocket.TextMessage:
			s.recordFrame("in", protocol.FrameTree)
			s.handleTree(ctx, data, false)
		case websocket.BinaryMessage:
			frame, err := protocol.DecodeFrame(data)
			if err != nil {
				s.sendError(errors.New("E500").Wrap(err), false)
				continue
			}
			s.recordFrame("in", frame.Type)
			if frame.Type != protocol.FrameTree {
				s.sendError(errors.New("E500").WithDetailf("unexpected %s frame", frame.Type), false)
				continue
			}
			s.handleTree(ctx, frame.Payload, frame.Flags.Has(protocol.FlagHydrate))
		}
	}
}

// handleTree runs one pass and reports its mutations. A failed pass still
// ships the mutations it made, followed by an error frame, so the client
// mirror stays in sync.
func (s *Session) handleTree(ctx context.Context, data []byte, hydrate bool) {
	tree, err := vdom.Decode(data, s.config.Registry)
	if err != nil {
		s.sendError(err, false)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return
	}

	if hydrate {
		err = s.renderer.Hydrate(ctx, tree, s.root)
	} else {
		err = s.renderer.Render(ctx, tree, s.root)
	}
	muts := s.rec.Take()

	if err == nil || len(muts) > 0 {
		s.seq++
		payload := protocol.EncodeMutations(&protocol.MutationsFrame{Seq: s.seq, Mutations: muts})
		frame := protocol.NewFrameWithFlags(protocol.FrameMutations, protocol.FlagSequenced|protocol.FlagFinal, payload)
		if werr := s.writeFrame(frame); werr != nil {
			s.logger.Warn("write error", "error", werr)
			s.recordError("write")
			return
		}
		s.logger.Debug("mutations sent", "seq", s.seq, "count", len(muts))
	}
	if err != nil {
		s.logger.Warn("pass failed", "error", err)
		s.writeErrorLocked(err, false)
	}
}

func (s *Session) sendError(err error, fatal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErrorLocked(err, fatal)
}

func (s *Session) writeErrorLocked(err error, fatal bool) {
	payload := protocol.EncodeErrorMessage(protocol.NewErrorMessage(err, fatal))
	if werr := s.writeFrame(protocol.NewFrame(protocol.FrameError, payload)); werr != nil {
		s.logger.Warn("write error", "error", werr)
		s.recordError("write")
	}
}

// writeFrame must be called with mu held.
func (s *Session) writeFrame(f *protocol.Frame) error {
	if s.closed.Load() {
		return websocket.ErrCloseSent
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.BinaryMessage, f.Encode()); err != nil {
		return err
	}
	s.recordFrame("out", f.Type)
	return nil
}

// teardown unmounts the session tree so components see WillUnmount.
func (s *Session) teardown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.renderer.Unmount(ctx, s.root); err != nil {
		s.logger.Warn("unmount failed", "error", err)
	}
	s.Close()
}

// Close closes the connection. Safe to call more than once and from any
// goroutine.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), deadline)
	_ = s.conn.Close()
}

func (s *Session) recordFrame(direction string, ft protocol.FrameType) {
	if s.config.Metrics != nil {
		s.config.Metrics.RecordFrame(direction, ft.String())
	}
}

func (s *Session) recordError(kind string) {
	if s.config.Metrics != nil {
		s.config.Metrics.RecordWebSocketError(kind)
	}
}
