package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// LogstashWriter mirrors log lines to a Logstash TCP input without ever
// blocking the caller. It holds one connection, drops lines while Logstash is
// unreachable, and backs off between reconnect attempts. Dropped counts are
// tracked so operators can see when the pipeline was lossy.
type LogstashWriter struct {
	addr string
	cfg  WriterConfig

	mu       sync.Mutex
	conn     net.Conn
	nextDial time.Time
	dropped  uint64
	closed   bool
}

// WriterConfig carries the tunables for a LogstashWriter. Zero values fall
// back to the defaults in DefaultWriterConfig.
type WriterConfig struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	RedialAfter  time.Duration
}

func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		DialTimeout:  2 * time.Second,
		WriteTimeout: time.Second,
		RedialAfter:  5 * time.Second,
	}
}

// NewLogstashWriter returns a writer that forwards log output to the given
// Logstash TCP address. Safe for concurrent use.
func NewLogstashWriter(addr string, cfg WriterConfig) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	defaults := DefaultWriterConfig()
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.RedialAfter <= 0 {
		cfg.RedialAfter = defaults.RedialAfter
	}

	return &LogstashWriter{addr: addr, cfg: cfg}, nil
}

// Write implements io.Writer. A failed send drops the line and schedules a
// redial; the caller always sees success so logging never stalls the request
// path.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	if !w.dialLocked() {
		w.dropped++
		return len(p), nil
	}

	_ = w.conn.SetWriteDeadline(time.Now().Add(w.cfg.WriteTimeout))
	if _, err := w.conn.Write(line); err != nil {
		w.conn.Close()
		w.conn = nil
		w.nextDial = time.Now().Add(w.cfg.RedialAfter)
		w.dropped++
	}
	return len(p), nil
}

// Dropped reports how many lines were discarded because Logstash was
// unreachable.
func (w *LogstashWriter) Dropped() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dropped
}

// Close tears down the connection. Further writes return io.ErrClosedPipe.
func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *LogstashWriter) dialLocked() bool {
	if w.conn != nil {
		return true
	}
	if !w.nextDial.IsZero() && time.Now().Before(w.nextDial) {
		return false
	}

	conn, err := net.DialTimeout("tcp", w.addr, w.cfg.DialTimeout)
	if err != nil {
		w.nextDial = time.Now().Add(w.cfg.RedialAfter)
		return false
	}
	w.conn = conn
	w.nextDial = time.Time{}
	return true
}
