package judge

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync/atomic"

	"github.com/google/uuid"
)

// Outcome carries one finished analysis back to the owning loop. RequestID
// matches the id returned by Submit; when several analyses overlap, each
// outcome arrives tagged so consumers can tell them apart.
type Outcome struct {
	RequestID string
	Backend   string
	Verdict   Verdict
	Err       error
}

// Dispatcher runs analysis calls off the state-owning goroutine. Submit is
// fire-and-forget: nothing prevents two analyses from overlapping, and
// outcomes are delivered in completion order on Results.
type Dispatcher struct {
	pick    func() (Judge, error)
	results chan Outcome
	pending atomic.Int32
}

// DispatcherOption adjusts a Dispatcher at construction.
type DispatcherOption func(*Dispatcher)

// WithPicker overrides how the backend is selected for each submission.
func WithPicker(pick func() (Judge, error)) DispatcherOption {
	return func(d *Dispatcher) { d.pick = pick }
}

// NewDispatcher builds a dispatcher that selects its backend from the
// environment at each submission.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		pick:    func() (Judge, error) { return Pick(CredentialsFromEnv()) },
		results: make(chan Outcome, 8),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Results delivers finished analyses.
func (d *Dispatcher) Results() <-chan Outcome { return d.results }

// Pending reports how many submissions have not yet produced an outcome.
func (d *Dispatcher) Pending() int { return int(d.pending.Load()) }

// Submit starts one analysis of the given snapshot and returns its request
// id. The snapshot must not be mutated afterwards; callers pass a fresh
// rasterization, not the live canvas buffer. When no backend is configured
// Submit returns ErrNotConfigured without starting anything, so an
// unconfigured board performs no network activity at all.
func (d *Dispatcher) Submit(snapshot image.Image) (string, error) {
	j, err := d.pick()
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	d.pending.Add(1)
	go func() {
		out := Outcome{RequestID: id, Backend: j.Name()}
		var buf bytes.Buffer
		if err := png.Encode(&buf, snapshot); err != nil {
			out.Err = err
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
			out.Verdict, out.Err = j.Analyze(ctx, buf.Bytes())
			cancel()
		}
		d.pending.Add(-1)
		d.results <- out
	}()
	return id, nil
}
