// Package output writes snapshots as newline-delimited JSON.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/genricoloni/mediabridge/internal/domain"
)

// LineWriter emits one JSON object per line and flushes after each one,
// so a reader on the other end of a pipe sees every snapshot immediately
type LineWriter struct {
	mu  sync.Mutex
	buf *bufio.Writer
	enc *json.Encoder
}

// NewLineWriter wraps w. Writes block when the consumer is slow.
func NewLineWriter(w io.Writer) *LineWriter {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &LineWriter{buf: buf, enc: enc}
}

// Write encodes the snapshot followed by a newline
func (w *LineWriter) Write(s domain.MediaSnapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}
