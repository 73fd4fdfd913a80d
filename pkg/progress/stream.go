package progress

// Stream buffers events on a channel for a consumer goroutine, typically a
// terminal printer. Sends never block: when the buffer is full the event is
// dropped, so a slow consumer cannot stall download workers.
type Stream struct {
	ch chan Event
}

const defaultStreamBuffer = 64

// NewStream creates a Stream with the given buffer size. Sizes below one
// fall back to a default.
func NewStream(size int) *Stream {
	if size < 1 {
		size = defaultStreamBuffer
	}
	return &Stream{ch: make(chan Event, size)}
}

// Notify implements Notifier with a non-blocking send.
func (s *Stream) Notify(e Event) {
	select {
	case s.ch <- e:
	default:
	}
}

// Events returns the receive side of the stream.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Close marks the stream finished. Call only after the last Notify; buffered
// events remain readable until drained.
func (s *Stream) Close() {
	close(s.ch)
}
