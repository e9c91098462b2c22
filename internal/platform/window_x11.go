//go:build linux

package platform

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// X11Windows controls top-level windows through EWMH hints.
// The X connection is opened on first use.
type X11Windows struct {
	logger *zap.Logger

	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom
}

// NewWindowController creates an X11 window controller
func NewWindowController(logger *zap.Logger) *X11Windows {
	return &X11Windows{
		logger: logger,
		atoms:  make(map[string]xproto.Atom),
	}
}

func (w *X11Windows) connect() (*xgb.Conn, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn != nil {
		return w.conn, nil
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	w.conn = conn
	w.root = xproto.Setup(conn).DefaultScreen(conn).Root
	return conn, nil
}

// Close closes the X connection if one was opened
func (w *X11Windows) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	return nil
}

func (w *X11Windows) getAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if atom, ok := w.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	if reply.Atom == xproto.AtomNone {
		return 0, fmt.Errorf("atom %s does not exist, no EWMH window manager?", name)
	}
	w.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// cardinals reads a 32-bit property as a slice of values
func (w *X11Windows) cardinals(conn *xgb.Conn, win xproto.Window, name string) ([]uint32, error) {
	atom, err := w.getAtom(conn, name)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}
	if reply.Format != 32 {
		return nil, nil
	}
	return decodeCardinals(reply.Value), nil
}

// MainWindow returns the first managed client window owned by pid
func (w *X11Windows) MainWindow(pid int32) (domain.WindowHandle, bool, error) {
	conn, err := w.connect()
	if err != nil {
		return 0, false, err
	}

	clients, err := w.cardinals(conn, w.root, "_NET_CLIENT_LIST")
	if err != nil {
		return 0, false, err
	}

	for _, id := range clients {
		owner, err := w.cardinals(conn, xproto.Window(id), "_NET_WM_PID")
		if err != nil || len(owner) == 0 {
			continue
		}
		if int32(owner[0]) == pid {
			return domain.WindowHandle(id), true, nil
		}
	}
	return 0, false, nil
}

// Restore maps the window, which de-iconifies it under EWMH window managers
func (w *X11Windows) Restore(handle domain.WindowHandle) error {
	conn, err := w.connect()
	if err != nil {
		return err
	}
	if err := xproto.MapWindowChecked(conn, xproto.Window(handle)).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	return nil
}

// SetForeground asks the window manager to activate the window
func (w *X11Windows) SetForeground(handle domain.WindowHandle) (bool, error) {
	conn, err := w.connect()
	if err != nil {
		return false, err
	}

	active, err := w.getAtom(conn, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return false, err
	}

	// source indication 1 = normal application, timestamp 0 = CurrentTime
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(handle),
		Type:   active,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{1, 0, 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(conn, false, w.root, mask, string(ev.Bytes())).Check(); err != nil {
		w.logger.Debug("Activation request rejected", zap.Error(err))
		return false, nil
	}
	return true, nil
}

func decodeCardinals(b []byte) []uint32 {
	values := make([]uint32, 0, len(b)/4)
	for i := 0; i+4 <= len(b); i += 4 {
		values = append(values, binary.LittleEndian.Uint32(b[i:i+4]))
	}
	return values
}
