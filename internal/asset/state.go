package asset

// State is the lifecycle of a single asset request
type State int

const (
	StateUnrequested State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnrequested:
		return "unrequested"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle tracks one asset request. Handles are only mutated by Loader.Poll
// on the render thread, so readers on that thread need no locking.
type Handle[T any] struct {
	path  string
	state State
	value T
	err   error
}

// NewHandle returns a handle in the Unrequested state
func NewHandle[T any](path string) *Handle[T] {
	return &Handle[T]{path: path}
}

// Path returns the asset path this handle was requested with
func (h *Handle[T]) Path() string { return h.path }

// State returns the current lifecycle state
func (h *Handle[T]) State() State { return h.state }

// Ready reports whether the value is available
func (h *Handle[T]) Ready() bool { return h.state == StateReady }

// Value returns the loaded value and true once the handle is Ready
func (h *Handle[T]) Value() (T, bool) {
	if h.state != StateReady {
		var zero T
		return zero, false
	}
	return h.value, true
}

// Err returns the load error when the handle is Failed
func (h *Handle[T]) Err() error { return h.err }

func (h *Handle[T]) markLoading() {
	if h.state == StateUnrequested {
		h.state = StateLoading
	}
}

func (h *Handle[T]) resolve(v T) {
	h.value = v
	h.err = nil
	h.state = StateReady
}

func (h *Handle[T]) fail(err error) {
	h.err = err
	h.state = StateFailed
}

// Resolved returns a handle already in the Ready state
func Resolved[T any](path string, v T) *Handle[T] {
	h := NewHandle[T](path)
	h.resolve(v)
	return h
}

// Failed returns a handle already in the Failed state
func Failed[T any](path string, err error) *Handle[T] {
	h := NewHandle[T](path)
	h.fail(err)
	return h
}
