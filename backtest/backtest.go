// Package backtest drives the event-replay loop: drain every event queued
// for the current timestamp, run the strategy, drain whatever trades that
// produced, snapshot history, and repeat until the queue is dry. Grounded
// on original_source/pytrade/backtest.py.
package backtest

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/backtrade/events"
	"github.com/aristath/backtrade/queue"
)

// Recorder takes a history snapshot at a point in time. History implements
// this; it is declared here, not imported from history, to avoid a
// backtest<->history import cycle (the same shape as portfolio.Broker).
type Recorder interface {
	TakeSnapshot(datetime time.Time)
}

// Backtest replays a queue of events against a strategy, recording a
// history snapshot after each distinct timestamp is fully processed.
type Backtest struct {
	indicators    map[string]any
	queue         *queue.Queue
	datetime      time.Time
	strategy      Strategy
	recordHistory bool
	recorders     []Recorder
	log           zerolog.Logger
}

// Option customises New.
type Option func(*Backtest)

// WithStrategy attaches a Strategy whose trades are run after every
// distinct timestamp's events are drained.
func WithStrategy(s Strategy) Option {
	return func(b *Backtest) { b.strategy = s }
}

// WithoutHistory disables history snapshots, matching record_history=False.
func WithoutHistory() Option {
	return func(b *Backtest) { b.recordHistory = false }
}

// WithLogger attaches a structured logger. Defaults to zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(b *Backtest) { b.log = log }
}

// New constructs a Backtest with an empty event queue.
func New(opts ...Option) *Backtest {
	b := &Backtest{
		indicators:    make(map[string]any),
		queue:         queue.New(),
		recordHistory: true,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With().Str("component", "backtest").Logger()
	return b
}

// AddRecorder registers r to take a snapshot after every processed
// timestamp, standing in for pytrade's implicit `History.instances` class
// registry with an explicit composition the caller controls.
func (b *Backtest) AddRecorder(r Recorder) {
	b.recorders = append(b.recorders, r)
}

// GetIndicator returns the last recorded value for name and whether one has
// been set.
func (b *Backtest) GetIndicator(name string) (any, bool) {
	v, ok := b.indicators[name]
	return v, ok
}

// SetIndicator implements events.IndicatorSink.
func (b *Backtest) SetIndicator(name string, value any) {
	b.indicators[name] = value
}

// Indicators returns a snapshot copy of every indicator currently recorded.
func (b *Backtest) Indicators() map[string]any {
	out := make(map[string]any, len(b.indicators))
	for k, v := range b.indicators {
		out[k] = v
	}
	return out
}

// LoadEvent queues event for processing.
func (b *Backtest) LoadEvent(event events.Event) error {
	return b.queue.Put(event)
}

// NumEventsLoaded returns how many events remain queued.
func (b *Backtest) NumEventsLoaded() int {
	return b.queue.Len()
}

// Datetime returns the timestamp of the event most recently processed, the
// zero time before the first event is processed.
func (b *Backtest) Datetime() time.Time {
	return b.datetime
}

func (b *Backtest) processNextEvent() (bool, error) {
	event, err := b.queue.Get()
	if err != nil {
		if errors.Is(err, queue.ErrEmpty) {
			return false, nil
		}
		return false, err
	}
	b.datetime = event.Datetime()
	if err := event.Process(); err != nil {
		return false, err
	}
	return true, nil
}

// processEventsForCurrentDatetime drains every event still queued for the
// current timestamp.
func (b *Backtest) processEventsForCurrentDatetime() error {
	for {
		next, ok := b.queue.Peek()
		if !ok || !next.Datetime().Equal(b.datetime) {
			return nil
		}
		if _, err := b.processNextEvent(); err != nil {
			return err
		}
	}
}

func (b *Backtest) runStrategy() error {
	if b.strategy == nil {
		return nil
	}
	for _, proposed := range b.strategy.GenerateTrades() {
		event, err := events.NewTradeEvent(b.datetime, proposed)
		if err != nil {
			return err
		}
		if err := b.LoadEvent(event); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backtest) takeHistorySnapshot() {
	if !b.recordHistory {
		return
	}
	for _, r := range b.recorders {
		r.TakeSnapshot(b.datetime)
	}
}

// Run processes every event in the queue with the same timestamp, then runs
// the strategy, then drains whatever that strategy queued, snapshotting
// history after each distinct timestamp, until the queue is empty.
//
// Unlike pytrade/backtest.py's run(), this returns immediately on an empty
// queue instead of looping: the Python version primes _datetime by calling
// _process_next_event unconditionally and only checks queue.empty() at the
// end of the loop body, which spins forever if run() is called against an
// empty queue (current_datetime stays None, and None == peek_next_event_
// datetime() is also None). Backtests are never meaningfully run against an
// empty queue, so this is treated as a bug rather than a behaviour to
// reproduce.
func (b *Backtest) Run() error {
	for {
		processed, err := b.processNextEvent()
		if err != nil {
			return err
		}
		if !processed {
			return nil
		}
		if err := b.processEventsForCurrentDatetime(); err != nil {
			return err
		}
		if err := b.runStrategy(); err != nil {
			return err
		}
		if err := b.processEventsForCurrentDatetime(); err != nil {
			return err
		}
		b.takeHistorySnapshot()
		if b.queue.Len() == 0 {
			return nil
		}
	}
}

var _ events.IndicatorSink = (*Backtest)(nil)
