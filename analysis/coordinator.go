package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/glint/document"
	"github.com/dshills/glint/glog"
	"github.com/google/uuid"
)

// ErrCoordinatorClosed is returned when attempting to use a closed
// coordinator.
var ErrCoordinatorClosed = errors.New("analysis coordinator is closed")

// DefaultDebounce is the quiet period between the last invalidation
// and the start of a background pass.
const DefaultDebounce = 150 * time.Millisecond

// completionBuffer bounds the completions channel. When the consumer
// lags the oldest queued completion is dropped; it is stale anyway.
const completionBuffer = 8

// Completion carries one finished analysis pass back to the editing
// goroutine, tagged with the snapshot it was computed from.
type Completion struct {
	// Result holds the computed spans and blocks. Nil when Err is set.
	Result *Result
	// Version is the document version the snapshot captured.
	Version uint64
	// Identity is the document identity the snapshot captured.
	Identity uuid.UUID
	// Err is the analyzer failure, if any. Non-fatal: the previous
	// spans and blocks stay live.
	Err error

	job uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce sets the quiet period before a scheduled job starts.
// Zero starts jobs as soon as the scheduler runs.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d < 0 {
			d = 0
		}
		c.delay = d
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(log *glog.Logger) Option {
	return func(c *Coordinator) {
		c.log = log
	}
}

// Coordinator schedules background analysis over document snapshots.
//
// Invalidate, Apply, and RunOnce are called from the editing
// goroutine. The worker goroutine only reads its snapshot and writes
// its result, so no document state is shared with it.
type Coordinator struct {
	analyzer Analyzer
	delay    time.Duration
	log      *glog.Logger

	mu      sync.Mutex
	snap    *document.Snapshot // newest snapshot awaiting analysis
	timer   *time.Timer
	seq     uint64 // invalidates stale timer callbacks
	state   JobState
	running bool
	fired   bool // debounce elapsed while a job was running
	jobSeq  uint64
	closed  bool

	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	completions chan Completion
	closeOnce   sync.Once
}

// NewCoordinator creates a coordinator driving the given analyzer.
func NewCoordinator(a Analyzer, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		analyzer:    a,
		delay:       DefaultDebounce,
		log:         glog.Discard,
		completions: make(chan Completion, completionBuffer),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Completions returns the channel completed jobs are delivered on.
// The channel is closed by Close.
func (c *Coordinator) Completions() <-chan Completion {
	return c.completions
}

// State returns the current job state.
func (c *Coordinator) State() JobState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Invalidate records that the document changed and restarts the
// debounce window with the given snapshot. The newest snapshot wins
// when invalidations pile up. A job already running is not aborted;
// its result fails the version check at apply time instead.
func (c *Coordinator) Invalidate(snap *document.Snapshot) {
	if snap == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.snap = snap
	if !c.running {
		c.state = StateScheduled
	}
	c.seq++
	cur := c.seq
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.fire(cur)
	})
	c.log.Debug("analysis scheduled at version %d", snap.Version())
}

// fire moves a scheduled job into Running once the debounce window has
// elapsed, unless a stale timer or an active worker preempts it.
func (c *Coordinator) fire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		return
	}
	if c.running {
		c.fired = true
		return
	}
	c.startLocked()
}

// startLocked launches the worker for the stored snapshot. The caller
// holds mu and has checked that no worker is running.
func (c *Coordinator) startLocked() {
	snap := c.snap
	c.snap = nil
	if snap == nil {
		c.state = StateIdle
		return
	}
	c.running = true
	c.state = StateRunning
	c.jobSeq++
	job := c.jobSeq
	c.wg.Add(1)
	go c.run(job, snap)
}

// run executes one analysis pass on the worker goroutine.
func (c *Coordinator) run(job uint64, snap *document.Snapshot) {
	defer c.wg.Done()

	c.log.Debug("analysis job %d running at version %d", job, snap.Version())
	res := NewResult()
	err := c.analyze(c.ctx, snap, res)

	comp := Completion{
		Version:  snap.Version(),
		Identity: snap.Identity(),
		Err:      err,
		job:      job,
	}
	if err == nil {
		res.Finalize(snap.LineCount())
		comp.Result = res
	}

	c.mu.Lock()
	c.running = false
	if err != nil && job == c.jobSeq {
		c.state = StateFailed
		c.log.Warn("analysis job %d failed: %v", job, err)
	}
	if c.fired && !c.closed {
		c.fired = false
		c.startLocked()
	}
	c.mu.Unlock()

	c.deliver(comp)
}

// analyze invokes the analyzer with panic recovery, so a broken
// tokenizer degrades to a failed job instead of tearing down the
// process.
func (c *Coordinator) analyze(ctx context.Context, snap *document.Snapshot, res *Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = fmt.Errorf("analyzer panic: %v", r)
			}
		}
	}()
	return c.analyzer.Analyze(ctx, snap, res)
}

// deliver posts a completion without ever blocking the worker. When
// the buffer is full the oldest completion is dropped: anything still
// queued is superseded by this one.
func (c *Coordinator) deliver(comp Completion) {
	for {
		select {
		case c.completions <- comp:
			return
		default:
		}
		select {
		case <-c.completions:
		default:
		}
	}
}

// Apply resolves a completion against the live document on the editing
// goroutine. It reports whether the result still describes the current
// document and should replace the live span map and block index. The
// job moves to Applied on a match, Superseded on a stale result, and
// Failed when the completion carries an error.
func (c *Coordinator) Apply(comp Completion, d *document.Document) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := comp.Err == nil &&
		comp.Identity == d.Identity() &&
		comp.Version == d.Version()

	// Only the newest job defines the observable state; completions
	// from older jobs still report their match result.
	if comp.job == c.jobSeq && !c.running {
		switch {
		case comp.Err != nil:
			c.state = StateFailed
		case matched:
			c.state = StateApplied
		default:
			c.state = StateSuperseded
		}
		c.log.Debug("analysis job %d resolved: %s", comp.job, c.state)
	}
	return matched
}

// RunOnce performs a synchronous analysis pass on the calling
// goroutine, bypassing the debounce machinery. Useful for initial
// loads and tests.
func (c *Coordinator) RunOnce(ctx context.Context, snap *document.Snapshot) Completion {
	comp := Completion{Version: snap.Version(), Identity: snap.Identity()}

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		comp.Err = ErrCoordinatorClosed
		return comp
	}

	res := NewResult()
	if err := c.analyze(ctx, snap, res); err != nil {
		comp.Err = err
		return comp
	}
	res.Finalize(snap.LineCount())
	comp.Result = res
	return comp
}

// Close stops the timer, waits for a running worker to finish, and
// closes the completions channel. The context handed to the analyzer
// is cancelled so a cooperative pass can bail out early.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.seq++
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.fired = false
		c.snap = nil
		c.mu.Unlock()

		c.cancel()
		c.wg.Wait()
		close(c.completions)
	})
	return nil
}
