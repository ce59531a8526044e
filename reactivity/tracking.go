package reactivity

// consumer is anything that can be scheduled to react to a producer
// change: an effect, or a computed acting as a downstream consumer of its
// own upstream producers.
type consumer interface {
	onStale()
}

// producer is anything that tracks a set of dependent consumers: a signal,
// or a computed acting as an upstream producer for its own downstream
// consumers.
type producer interface {
	removeConsumer(c consumer)
}

// trackingFrame accumulates the producers read during a single run of a
// consumer (effect body or computed compute function). Frames are pushed
// on entry to a run and popped on exit; producers rebuild their tracked
// dependency set from scratch on every run.
type trackingFrame struct {
	consumer consumer
	newDeps  map[producer]struct{}
}

var trackStack []*trackingFrame

// untrackDepth is a counter, not a bool, so nested Untrack calls compose.
var untrackDepth int

func pushFrame(f *trackingFrame) {
	trackStack = append(trackStack, f)
}

func popFrame() *trackingFrame {
	n := len(trackStack)
	f := trackStack[n-1]
	trackStack = trackStack[:n-1]
	return f
}

func currentFrame() *trackingFrame {
	if untrackDepth > 0 || len(trackStack) == 0 {
		return nil
	}
	return trackStack[len(trackStack)-1]
}

// track registers p as a dependency of whatever consumer is currently
// running, if any. Called from every producer's Get().
func track(p producer, addConsumer func(consumer)) {
	f := currentFrame()
	if f == nil {
		return
	}
	addConsumer(f.consumer)
	f.newDeps[p] = struct{}{}
}

// runTracked executes fn with c installed as the current consumer and
// returns the set of producers it read. Callers are responsible for
// diffing this against the consumer's previous dependency set and
// detaching from any producers that are no longer read.
func runTracked(c consumer, fn func()) map[producer]struct{} {
	frame := &trackingFrame{consumer: c, newDeps: make(map[producer]struct{})}
	pushFrame(frame)
	defer popFrame()
	fn()
	return frame.newDeps
}

// detachStale removes c from every producer in oldDeps that is absent from
// newDeps.
func detachStale(c consumer, oldDeps, newDeps map[producer]struct{}) {
	for p := range oldDeps {
		if _, ok := newDeps[p]; !ok {
			p.removeConsumer(c)
		}
	}
}

// Untrack runs fn with dependency tracking suspended: reads performed
// inside fn do not register as dependencies of the currently running
// effect or computed.
func Untrack(fn func()) {
	untrackDepth++
	defer func() { untrackDepth-- }()
	fn()
}

// UntrackValue is Untrack for a function that returns a value.
func UntrackValue[T any](fn func() T) T {
	untrackDepth++
	defer func() { untrackDepth-- }()
	return fn()
}
