package tooltip

import "github.com/andyrewlee/tipkit/internal/delay"

// Registry is the single shared slot holding the most recently scheduled hide
// across all controllers. Construct one per application and hand the same
// pointer to every controller.
//
// The slot does not own its task: a task that fired or was cancelled simply
// reads as "no pending hide". Like the controllers using it, a Registry is
// confined to the event loop and is not safe for concurrent use.
type Registry struct {
	pending *delay.Task
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RecordHide replaces the slot with task. The previous occupant is not
// cancelled; its own timer keeps running.
func (r *Registry) RecordHide(task *delay.Task) {
	r.pending = task
}

// TakeIfPending reports whether the held hide is still pending. If it is,
// the slot is cleared and the hide is flushed, running its callback now with
// flushed=true.
func (r *Registry) TakeIfPending() bool {
	task := r.pending
	r.pending = nil
	if !task.Pending() {
		return false
	}
	task.Flush()
	return true
}

// Peek returns the task currently in the slot, pending or not.
func (r *Registry) Peek() *delay.Task {
	return r.pending
}
