package input

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/bethropolis/nib/internal/logger"
)

// ErrTimeout is returned by Peek when no byte arrived in time.
var ErrTimeout = errors.New("input: no data within timeout")

// Source is a blocking byte stream with a timed, non-consuming peek.
// Read and Peek are only called from the control goroutine.
type Source interface {
	// Read blocks for the next byte. io.EOF ends the stream.
	Read() (byte, error)
	// Peek waits at most timeout for a byte without consuming it.
	Peek(timeout time.Duration) (byte, error)
	// Available reports whether Read would return without blocking.
	Available() bool
	// Shutdown stops background reading and releases the input handle.
	Shutdown()
}

const queueSize = 4096

// QueueSource is fed by background goroutines and drained by the control goroutine.
type QueueSource struct {
	ch     chan byte
	done   chan struct{}
	notify chan struct{} // pending out-of-band notification, see Notify

	mu     sync.Mutex // serializes feeders so sequences stay contiguous
	closed bool
	err    error

	peeked    byte
	hasPeeked bool

	stopOnce sync.Once
	closer   io.Closer
}

func newQueueSource() *QueueSource {
	return &QueueSource{
		ch:     make(chan byte, queueSize),
		done:   make(chan struct{}),
		notify: make(chan struct{}, 1),
	}
}

// NewPushSource returns a source that only receives bytes through Feed.
func NewPushSource() *QueueSource {
	return newQueueSource()
}

// NewReaderSource drains r on its own goroutine. If r is an io.Closer it is
// closed on Shutdown.
func NewReaderSource(r io.Reader) *QueueSource {
	q := newQueueSource()
	if c, ok := r.(io.Closer); ok {
		q.closer = c
	}
	go q.drain(r)
	return q
}

func (q *QueueSource) drain(r io.Reader) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 && !q.Feed(buf[:n]) {
			return
		}
		if err != nil {
			q.Finish(err)
			return
		}
	}
}

// Feed queues p as one contiguous run. It returns false once the source is
// finished or shut down.
func (q *QueueSource) Feed(p []byte) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case <-q.done:
		return false
	default:
	}
	for _, b := range p {
		select {
		case q.ch <- b:
		case <-q.done:
			return false
		}
	}
	return true
}

// Notify flags a terminal resize without touching the byte stream, so it can
// never split a key sequence that is still being read. The decoder reports
// it as ActionResize before its next operation. Repeated calls coalesce.
func (q *QueueSource) Notify() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// next blocks for a byte or a pending notification. Notifications win.
func (q *QueueSource) next() (byte, bool, error) {
	if q.hasPeeked {
		b, err := q.Read()
		return b, false, err
	}
	select {
	case <-q.notify:
		return 0, true, nil
	default:
	}
	select {
	case <-q.notify:
		return 0, true, nil
	case b, ok := <-q.ch:
		if !ok {
			return 0, false, q.endErr()
		}
		return b, false, nil
	case <-q.done:
		return 0, false, io.EOF
	}
}

// Finish marks the end of input. Bytes already queued are still delivered.
func (q *QueueSource) Finish(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Warnf("Input: reader stopped: %v", err)
	}
	q.closed = true
	q.err = err
	close(q.ch)
}

func (q *QueueSource) endErr() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err == nil || errors.Is(q.err, io.EOF) {
		return io.EOF
	}
	return q.err
}

func (q *QueueSource) Read() (byte, error) {
	if q.hasPeeked {
		q.hasPeeked = false
		return q.peeked, nil
	}
	select {
	case b, ok := <-q.ch:
		if !ok {
			return 0, q.endErr()
		}
		return b, nil
	case <-q.done:
		return 0, io.EOF
	}
}

func (q *QueueSource) Peek(timeout time.Duration) (byte, error) {
	if q.hasPeeked {
		return q.peeked, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case b, ok := <-q.ch:
		if !ok {
			return 0, ErrTimeout
		}
		q.peeked, q.hasPeeked = b, true
		return b, nil
	case <-timer.C:
		return 0, ErrTimeout
	case <-q.done:
		return 0, ErrTimeout
	}
}

func (q *QueueSource) Available() bool {
	return q.hasPeeked || len(q.ch) > 0
}

func (q *QueueSource) Shutdown() {
	q.stopOnce.Do(func() {
		close(q.done)
		if q.closer != nil {
			if err := q.closer.Close(); err != nil {
				logger.Debugf("Input: closing source: %v", err)
			}
		}
	})
}

var _ Source = (*QueueSource)(nil)
