package view

// Kind tags the variant held by a State.
type Kind string

const (
	KindIdle   Kind = "idle"
	KindFailed Kind = "failed"
	KindLoaded Kind = "loaded"
)

// State is the data state of one screen: idle, failed with a message, or
// loaded with data. Pages render after their fetch returns, so there is no
// loading variant.
type State[T any] struct {
	kind    Kind
	message string
	data    T
}

func Idle[T any]() State[T] { return State[T]{kind: KindIdle} }

func Failed[T any](message string) State[T] {
	return State[T]{kind: KindFailed, message: message}
}

func Loaded[T any](data T) State[T] {
	return State[T]{kind: KindLoaded, data: data}
}

func (s State[T]) Kind() Kind {
	if s.kind == "" {
		return KindIdle
	}
	return s.kind
}

func (s State[T]) IsIdle() bool   { return s.Kind() == KindIdle }
func (s State[T]) IsFailed() bool { return s.Kind() == KindFailed }
func (s State[T]) IsLoaded() bool { return s.Kind() == KindLoaded }

// Message is the failure message; empty for other variants.
func (s State[T]) Message() string { return s.message }

// Data returns the loaded value; ok is false for other variants.
func (s State[T]) Data() (data T, ok bool) {
	return s.data, s.kind == KindLoaded
}

// Value is Data without the flag, for templates.
func (s State[T]) Value() T { return s.data }

// Snapshot is the JSON shape of a State.
type Snapshot[T any] struct {
	State   Kind   `json:"state"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

func (s State[T]) Snapshot() Snapshot[T] {
	snap := Snapshot[T]{State: s.Kind(), Message: s.message}
	if s.IsLoaded() {
		data := s.data
		snap.Data = &data
	}
	return snap
}
