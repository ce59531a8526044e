package reactivity

import "github.com/vincenthirtz/pulse-js-framework-sub000/pulseerr"

// schedulable is queued work the scheduler drains during a flush: an
// effect re-run, or an eager computed's deferred recompute.
type schedulable interface {
	runScheduled()
}

// maxReentrantRuns bounds how many times a single schedulable may run
// within one flush before the engine gives up and reports a circular
// dependency.
const maxReentrantRuns = 100

type scheduler struct {
	batchDepth int
	queue      []schedulable
	queued     map[schedulable]bool
	runCounts  map[schedulable]int
	flushing   bool
}

var sched = &scheduler{
	queued:    make(map[schedulable]bool),
	runCounts: make(map[schedulable]int),
}

// enqueue schedules item for the current (or next) flush, deduplicated by
// identity. If no batch is open and no flush is in progress, it triggers
// an immediate flush.
func (s *scheduler) enqueue(item schedulable) {
	if s.queued[item] {
		return
	}
	s.queued[item] = true
	s.queue = append(s.queue, item)
	if s.batchDepth == 0 {
		s.flush()
	}
}

// flush drains the pending queue in FIFO order. Re-entrant scheduling
// during a flush (an effect that sets a signal another effect reads)
// appends to the same queue and is drained within this call, satisfying
// "effects scheduled during a flush are appended and drained in the same
// flush".
func (s *scheduler) flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	defer func() {
		s.flushing = false
		s.runCounts = make(map[schedulable]int)
	}()
	for len(s.queue) > 0 {
		item := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.queued, item)

		s.runCounts[item]++
		if s.runCounts[item] > maxReentrantRuns {
			reportCircular(item)
			continue
		}
		item.runScheduled()
	}
}

// reportCircular surfaces a CircularDependency error for an effect that
// re-schedules itself beyond the reentrancy bound. Effects with an
// onError handler receive it there; otherwise it is logged.
func reportCircular(item schedulable) {
	err := pulseerr.New(pulseerr.CircularDependency,
		"effect re-entered more than the permitted number of times within a single flush")
	if e, ok := item.(*effectNode); ok {
		e.reportError(err)
		return
	}
	logError(err)
}

// Batch defers all effect/eager-computed flushing until fn returns. Nested
// batch calls share the innermost (outermost, really — depth-counted)
// scope and only flush once the outermost batch exits.
func Batch(fn func()) {
	sched.batchDepth++
	defer func() {
		sched.batchDepth--
		if sched.batchDepth == 0 {
			sched.flush()
		}
	}()
	fn()
}

// notify walks a producer's consumer set, telling each one it may be
// stale. This always runs synchronously, regardless of batch depth —
// only the resulting effect runs / eager recomputes are deferred.
func notify(consumers map[consumer]struct{}) {
	if len(consumers) == 0 {
		return
	}
	// Snapshot: onStale may mutate the map we're ranging over (a computed
	// going dirty can cause consumers to detach/reattach elsewhere).
	snapshot := make([]consumer, 0, len(consumers))
	for c := range consumers {
		snapshot = append(snapshot, c)
	}
	for _, c := range snapshot {
		c.onStale()
	}
}
