package reactivity

import "reflect"

// Disposer releases whatever resource its creator returned it for:
// an effect's subscriptions, a subscribe() listener, a context's owned
// nodes. Disposal is idempotent.
type Disposer func()

// Signal is the writable reactive cell.
type Signal[T any] interface {
	// Get reads the value and, if called while an effect or computed is
	// running, registers the current consumer as a dependent.
	Get() T
	// Peek reads the value without registering a dependency.
	Peek() T
	// Set stores a new value. If the equality predicate considers it
	// unchanged, no dependents are scheduled.
	Set(value T)
	// Update computes the next value from the current one and sets it.
	Update(fn func(T) T)
	// Subscribe registers fn to be called after every value change. It
	// does not fire for the initial value. Returns a disposer.
	Subscribe(fn func(T)) Disposer
}

// SignalOption configures a signal at creation time.
type SignalOption[T any] func(*signalConfig[T])

type signalConfig[T any] struct {
	equals func(a, b T) bool
}

// WithEquals overrides the default reference/structural equality
// predicate used to decide whether a Set actually changes the value.
func WithEquals[T any](eq func(a, b T) bool) SignalOption[T] {
	return func(c *signalConfig[T]) { c.equals = eq }
}

func defaultEquals[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// baseSignal is the concrete Signal implementation. The dependent-tracking
// half (consumers map) is shared in shape with computed's downstream side;
// see tracking.go.
type baseSignal[T any] struct {
	value     T
	equals    func(a, b T) bool
	consumers map[consumer]struct{}

	nextListenerID int
	listeners      map[int]func(T)
}

// CreateSignal builds a writable reactive cell (spec calls this "pulse").
func CreateSignal[T any](initial T, opts ...SignalOption[T]) Signal[T] {
	cfg := signalConfig[T]{equals: defaultEquals[T]}
	for _, o := range opts {
		o(&cfg)
	}
	return &baseSignal[T]{
		value:     initial,
		equals:    cfg.equals,
		consumers: make(map[consumer]struct{}),
		listeners: make(map[int]func(T)),
	}
}

func (s *baseSignal[T]) removeConsumer(c consumer) {
	delete(s.consumers, c)
}

func (s *baseSignal[T]) Get() T {
	track(s, func(c consumer) { s.consumers[c] = struct{}{} })
	return s.value
}

func (s *baseSignal[T]) Peek() T {
	return s.value
}

func (s *baseSignal[T]) Set(v T) {
	if s.equals(s.value, v) {
		return
	}
	s.value = v
	s.notifySubscribers()
	notify(s.consumers)
}

func (s *baseSignal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

func (s *baseSignal[T]) Subscribe(fn func(T)) Disposer {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *baseSignal[T]) notifySubscribers() {
	for _, fn := range s.listeners {
		fn(s.value)
	}
}
