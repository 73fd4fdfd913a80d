// Package progress delivers per-candidate terminal events to a caller.
package progress

// Kind labels a terminal progress event.
type Kind string

const (
	KindDownloaded Kind = "downloaded"
	KindFiltered   Kind = "filtered"
	KindFailed     Kind = "failed"
)

// Event is emitted exactly once per candidate, at its terminal transition.
// Detail carries the saved file path for downloads and the human-readable
// reason for failures; filtered events leave it empty.
type Event struct {
	Kind   Kind
	URL    string
	Detail string
}

// Notifier receives events synchronously from download workers, so
// implementations must be safe for concurrent use and must not block.
// Presentation layers that need cross-goroutine delivery should buffer,
// e.g. via Stream.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }

// Nop discards all events.
var Nop Notifier = NotifierFunc(func(Event) {})
