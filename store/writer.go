package store

import (
	"log/slog"
	"sync"

	"github.com/focusplug/focusplug/internal/models"
)

// Writer applies writes to a DB on a background goroutine so that callers on
// the timer path never wait for disk I/O. Writes are applied in the order
// they were queued. Failures are logged and dropped.
type Writer struct {
	db DB

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []write
	busy   bool
	closed bool
	done   chan struct{}
}

type write struct {
	entries map[string]any
	session *models.Session
}

// NewWriter starts a Writer for db.
func NewWriter(db DB) *Writer {
	w := &Writer{
		db:   db,
		done: make(chan struct{}),
	}

	w.cond = sync.NewCond(&w.mu)

	go w.loop()

	return w
}

// Save queues entries to be encoded and stored in one transaction.
func (w *Writer) Save(entries map[string]any) {
	// copy so that later mutations by the caller are not observed
	cp := make(map[string]any, len(entries))
	for k, v := range entries {
		cp[k] = v
	}

	w.enqueue(write{entries: cp})
}

// AddSession queues a session history record.
func (w *Writer) AddSession(sess models.Session) {
	w.enqueue(write{session: &sess})
}

func (w *Writer) enqueue(op write) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		slog.Warn("write dropped: writer is closed")
		return
	}

	w.queue = append(w.queue, op)
	w.cond.Broadcast()
}

// Flush blocks until every queued write has been applied.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for len(w.queue) > 0 || w.busy {
		w.cond.Wait()
	}
}

// Close flushes pending writes and stops the background goroutine. It does
// not close the underlying DB.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}

	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.done
}

func (w *Writer) loop() {
	defer close(w.done)

	for {
		w.mu.Lock()

		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}

		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}

		op := w.queue[0]
		w.queue = w.queue[1:]
		w.busy = true

		w.mu.Unlock()

		w.apply(op)

		w.mu.Lock()
		w.busy = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

func (w *Writer) apply(op write) {
	var err error

	switch {
	case op.session != nil:
		err = w.db.AddSession(op.session)
	case op.entries != nil:
		var encoded map[string][]byte

		encoded, err = Encode(op.entries)
		if err == nil {
			err = w.db.Put(encoded)
		}
	}

	if err != nil {
		slog.Error(
			"unable to persist state",
			slog.Any("error", ErrPersistenceWriteFailure.Wrap(err)),
		)
	}
}
