package session

import "sync"

// latest runs fn on the most recently submitted value in a single goroutine.
// A value superseded before the goroutine picks it up is dropped, so writes
// never land out of order.
type latest[T any] struct {
	mu      sync.Mutex
	pending *T
	wake    chan struct{}
	stop    chan struct{}
	done    chan struct{}
	fn      func(T)
}

func newLatest[T any](fn func(T)) *latest[T] {
	w := &latest[T]{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
		fn:   fn,
	}
	go w.run()
	return w
}

// submit queues v and returns immediately.
func (w *latest[T]) submit(v T) {
	w.mu.Lock()
	w.pending = &v
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *latest[T]) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *latest[T]) flush() {
	w.mu.Lock()
	v := w.pending
	w.pending = nil
	w.mu.Unlock()

	if v != nil {
		w.fn(*v)
	}
}

// close runs whatever is still pending and stops the goroutine.
func (w *latest[T]) close() {
	close(w.stop)
	<-w.done
}
