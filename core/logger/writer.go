package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// asyncWriter provides buffered asynchronous writes to one or more sinks.
type asyncWriter struct {
	queue    chan []byte
	flushReq chan chan error
	done     chan struct{}
	once     sync.Once
	sinks    []*bufio.Writer
	sinkMu   sync.Mutex
	writeErr error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w == nil {
			continue
		}
		sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
	}
	aw := &asyncWriter{
		queue:    make(chan []byte, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
		sinks:    sinks,
	}
	go aw.loop()
	return aw
}

func (w *asyncWriter) loop() {
	for {
		select {
		case data, ok := <-w.queue:
			if !ok {
				w.flushAll()
				close(w.done)
				return
			}
			if len(data) == 0 {
				continue
			}
			if err := w.writeAll(data); err != nil {
				w.setErr(err)
			}
		case ack := <-w.flushReq:
			ack <- w.flushAll()
		}
	}
}

// Write queues a line for asynchronous delivery; it never blocks on sink I/O
// but falls back to synchronous delivery when the queue is saturated.
func (w *asyncWriter) Write(line []byte) error {
	buf := make([]byte, len(line))
	copy(buf, line)
	select {
	case w.queue <- buf:
		return nil
	default:
	}
	w.sinkMu.Lock()
	defer w.sinkMu.Unlock()
	return w.writeLocked(buf)
}

// Flush forces all buffered data to the underlying sinks.
func (w *asyncWriter) Flush() error {
	select {
	case <-w.done:
		return w.getErr()
	default:
	}
	ack := make(chan error, 1)
	select {
	case w.flushReq <- ack:
		if err := <-ack; err != nil {
			return err
		}
	case <-w.done:
	}
	return w.getErr()
}

// Close drains the queue, flushes sinks, and stops the background loop.
func (w *asyncWriter) Close() error {
	w.once.Do(func() {
		close(w.queue)
	})
	<-w.done
	return w.getErr()
}

func (w *asyncWriter) writeAll(data []byte) error {
	w.sinkMu.Lock()
	defer w.sinkMu.Unlock()
	return w.writeLocked(data)
}

func (w *asyncWriter) writeLocked(data []byte) error {
	for _, sink := range w.sinks {
		if sink == nil {
			continue
		}
		if _, err := sink.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushAll() error {
	w.sinkMu.Lock()
	defer w.sinkMu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) getErr() error {
	w.sinkMu.Lock()
	defer w.sinkMu.Unlock()
	return w.writeErr
}

func (w *asyncWriter) setErr(err error) {
	if err == nil {
		return
	}
	w.sinkMu.Lock()
	defer w.sinkMu.Unlock()
	if w.writeErr == nil {
		w.writeErr = err
	}
}
