// Package countdown computes the time remaining until a fixed target
// instant, broken down the way a landing-page countdown displays it.
//
// The computation is a pure function of (target, now) — no state, no I/O.
// The only stateful piece is Ticker, which re-runs the computation once per
// second for as long as a watcher is subscribed, mirroring a countdown
// widget that recomputes while mounted and stops when unmounted.
package countdown

import (
	"context"
	"time"
)

// Breakdown is a non-negative days/hours/minutes/seconds split of a
// duration. Once the target has passed, every component is zero — the
// countdown clamps at 0d 0h 0m 0s and never shows negative values.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Zero reports whether the countdown has expired.
func (b Breakdown) Zero() bool {
	return b.Days == 0 && b.Hours == 0 && b.Minutes == 0 && b.Seconds == 0
}

// Remaining returns the breakdown of target − now, clamped to zero when the
// target is in the past.
//
// Sub-second remainders truncate toward zero (a remaining 1.9s shows as 1s),
// matching how countdowns tick down: the displayed value never overstates
// the time left.
func Remaining(target, now time.Time) Breakdown {
	d := target.Sub(now)
	if d <= 0 {
		return Breakdown{}
	}

	total := int(d / time.Second)
	return Breakdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// TotalSeconds recombines the breakdown into whole seconds. Inverse of the
// split performed by Remaining — used by tests to check the round-trip law.
func (b Breakdown) TotalSeconds() int {
	return b.Days*86400 + b.Hours*3600 + b.Minutes*60 + b.Seconds
}

// Ticker emits a fresh Breakdown on C once per interval until the context
// is cancelled. The goroutine and the underlying time.Ticker are always
// released on cancellation — the caller only has to cancel the context,
// there is no separate Stop to forget.
//
// The channel is unbuffered on purpose: if the consumer falls behind, ticks
// are dropped rather than queued, so a slow reader always sees a current
// value instead of a backlog of stale ones.
type Ticker struct {
	C <-chan Breakdown
}

// NewTicker starts a countdown toward target that recomputes every interval.
// An interval of 1s gives the classic per-second countdown; tests use
// shorter intervals.
func NewTicker(ctx context.Context, target time.Time, interval time.Duration) *Ticker {
	ch := make(chan Breakdown)

	go func() {
		defer close(ch)
		tick := time.NewTicker(interval)
		defer tick.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				select {
				case ch <- Remaining(target, now):
				default:
					// consumer not ready — drop this tick
				}
			}
		}
	}()

	return &Ticker{C: ch}
}
