// Package poll refreshes the unread total from the server on a fixed
// schedule. Each tick is independent: a failure is reported and the next
// tick runs as usual.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/glabrego/fiets-cli/internal/fiets"
	"github.com/glabrego/fiets-cli/internal/logging"
)

type CountSource interface {
	Counts(ctx context.Context) (fiets.Counts, error)
}

// Sink receives the outcome of each tick.
type Sink interface {
	CountsPolled(counts fiets.Counts)
	CountsFailed(err error)
}

type Poller struct {
	cron     *cron.Cron
	source   CountSource
	sink     Sink
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
}

// New builds a poller ticking every interval. timeout bounds each request;
// zero leaves it unbounded.
func New(source CountSource, sink Sink, interval, timeout time.Duration, logger logging.Logger) (*Poller, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("poll interval must be at least 1s: %s", interval)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Poller{
		cron:     cron.New(),
		source:   source,
		sink:     sink,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "poll"),
	}
	p.cron.Schedule(cron.Every(interval), cron.FuncJob(func() { p.Tick(context.Background()) }))
	return p, nil
}

// Start begins ticking in the background. The first tick happens one
// interval after start.
func (p *Poller) Start() {
	p.logger.Info("starting count poll", "interval", p.interval)
	p.cron.Start()
}

// Stop halts the schedule; the returned context is done once a running
// tick finishes.
func (p *Poller) Stop() context.Context {
	p.logger.Info("stopping count poll")
	return p.cron.Stop()
}

// Tick performs one poll.
func (p *Poller) Tick(ctx context.Context) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	start := time.Now()
	counts, err := p.source.Counts(ctx)
	if err != nil {
		p.logger.Error("count poll failed", "err", err, "duration", time.Since(start))
		p.sink.CountsFailed(err)
		return
	}
	p.logger.Debug("count poll done", "unread", counts.UnreadCount, "duration", time.Since(start))
	p.sink.CountsPolled(counts)
}

// SinkFuncs adapts a pair of functions to Sink.
type SinkFuncs struct {
	OnCounts func(fiets.Counts)
	OnError  func(error)
}

func (s SinkFuncs) CountsPolled(counts fiets.Counts) {
	if s.OnCounts != nil {
		s.OnCounts(counts)
	}
}

func (s SinkFuncs) CountsFailed(err error) {
	if s.OnError != nil {
		s.OnError(err)
	}
}
