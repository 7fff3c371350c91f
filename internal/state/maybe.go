package state

// Maybe is a value that may be absent. Reads from the store return Maybe so
// the "nothing stored or unreadable" branch is explicit at the call site.
type Maybe[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Maybe[T] { return Maybe[T]{value: v, ok: true} }

func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

func (m Maybe[T]) Present() bool { return m.ok }

// OrElse returns the value, or def when absent.
func (m Maybe[T]) OrElse(def T) T {
	if !m.ok {
		return def
	}
	return m.value
}
