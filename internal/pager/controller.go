package pager

import (
	"fmt"

	"github.com/glabrego/fiets-cli/internal/fiets"
)

type State int

const (
	StateReady State = iota
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Dispatcher sends a mark-read request without waiting for its outcome.
type Dispatcher interface {
	DispatchMarkRead(ids []int64)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ids []int64)

func (f DispatcherFunc) DispatchMarkRead(ids []int64) { f(ids) }

// Batch describes one committed mark-read step.
type Batch struct {
	IDs       []int64
	Remaining int
	State     State
}

// MarkReadController applies mark-read optimistically: the request is
// handed to the dispatcher and the local state advances immediately,
// whatever the request's fate. Drift is corrected by the next count poll.
type MarkReadController struct {
	window        *Window
	counter       *UnreadCounter
	initialUnread int
}

// NewMarkReadController captures initialUnread as the label denominator.
func NewMarkReadController(window *Window, counter *UnreadCounter, initialUnread int) *MarkReadController {
	return &MarkReadController{
		window:        window,
		counter:       counter,
		initialUnread: max(initialUnread, 0),
	}
}

func (c *MarkReadController) State() State {
	if len(c.window.VisiblePage()) == 0 {
		return StateExhausted
	}
	return StateReady
}

// Enabled reports whether the mark-read affordance accepts input.
func (c *MarkReadController) Enabled() bool {
	return c.State() == StateReady
}

// Targets lists the ids of the visible page.
func (c *MarkReadController) Targets() []int64 {
	return postIDs(c.window.VisiblePage())
}

func (c *MarkReadController) InitialUnread() int {
	return c.initialUnread
}

// Label renders the mark-read affordance text.
func (c *MarkReadController) Label() string {
	visible := len(c.window.VisiblePage())
	if visible == 0 {
		return "No more posts to mark"
	}
	return fmt.Sprintf("Mark %d of %d read", visible, c.initialUnread)
}

// MarkCurrentPageRead dispatches the visible ids, then consumes them from
// the window and the unread counter. It returns false without touching
// anything when the window is exhausted.
func (c *MarkReadController) MarkCurrentPageRead(d Dispatcher) (Batch, bool) {
	targets := c.window.VisiblePage()
	if len(targets) == 0 {
		return Batch{State: StateExhausted}, false
	}
	ids := postIDs(targets)
	d.DispatchMarkRead(ids)

	// n equals the visible length, so Consume cannot fail here.
	if err := c.window.Consume(len(targets)); err != nil {
		panic(err)
	}
	c.counter.DecrementBy(len(targets))

	return Batch{IDs: ids, Remaining: c.window.Len(), State: c.State()}, true
}

func postIDs(posts []fiets.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
