package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/poll"
)

// CountsPolledMsg carries a successful background count poll into the
// event loop.
type CountsPolledMsg struct {
	Counts fiets.Counts
}

type CountsFailedMsg struct {
	Err error
}

type Sender interface {
	Send(msg tea.Msg)
}

// PollSink forwards poll results to a running program so they are applied
// on the event loop like any other message.
func PollSink(s Sender) poll.Sink {
	return poll.SinkFuncs{
		OnCounts: func(c fiets.Counts) { s.Send(CountsPolledMsg{Counts: c}) },
		OnError:  func(err error) { s.Send(CountsFailedMsg{Err: err}) },
	}
}
