// Package trigger exposes the hotkey capture path over a unix socket.
// A desktop keybinding (or `voxa trigger`) connects and sends one JSON
// message; the daemon treats it exactly like a hotkey press.
package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/doeshing/voxa/internal/ports"
)

// DefaultSocketPath is where the daemon listens for trigger messages.
const DefaultSocketPath = "/tmp/voxa.sock"

// Message is the wire format for one trigger. An empty Utterance asks the
// daemon to capture audio; a non-empty one is processed as typed input.
type Message struct {
	Utterance string `json:"utterance,omitempty"`
}

// SocketListener implements ports.TriggerListener on a unix socket.
type SocketListener struct {
	path   string
	ln     net.Listener
	logger ports.Logger
}

// NewSocketListener builds a listener at path (empty uses the default).
func NewSocketListener(path string, log ports.Logger) *SocketListener {
	if path == "" {
		path = DefaultSocketPath
	}
	return &SocketListener{path: path, logger: log}
}

// Listen implements ports.TriggerListener. It accepts connections until
// the context is done or Close is called, invoking fire once per message.
func (l *SocketListener) Listen(ctx context.Context, fire func(utterance string)) error {
	_ = os.Remove(l.path)

	ln, err := net.Listen("unix", l.path)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", l.path, err)
	}
	l.ln = ln

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			l.logger.Warn("trigger accept failed", map[string]interface{}{"error": err.Error()})
			continue
		}
		go l.handle(conn, fire)
	}
}

func (l *SocketListener) handle(conn net.Conn, fire func(utterance string)) {
	defer conn.Close()

	var msg Message
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		l.logger.Debug("malformed trigger message", map[string]interface{}{"error": err.Error()})
		return
	}
	fire(msg.Utterance)
}

// Close stops the listener and removes the socket file.
func (l *SocketListener) Close() error {
	if l.ln != nil {
		_ = l.ln.Close()
	}
	return os.Remove(l.path)
}

// Send connects to a running daemon and delivers one trigger message.
// Used by the `voxa trigger` command bound to a desktop hotkey.
func Send(path, utterance string) error {
	if path == "" {
		path = DefaultSocketPath
	}
	conn, err := net.Dial("unix", path)
	if err != nil {
		return fmt.Errorf("is the voxa daemon running? dial %s: %w", path, err)
	}
	defer conn.Close()

	return json.NewEncoder(conn).Encode(Message{Utterance: utterance})
}

var _ ports.TriggerListener = (*SocketListener)(nil)
