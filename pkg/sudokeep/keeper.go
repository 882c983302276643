// Package sudokeep keeps the cached sudo credential alive for the duration
// of a run. Many steps invoke privileged commands minutes apart; without a
// refresh the credential would expire mid-run and fail an unattended step.
package sudokeep

import (
	"context"
	"time"

	"github.com/nocure4OCD/fedora42-postinstall/pkg/execx"
)

// DefaultInterval is how often the cached credential is refreshed.
const DefaultInterval = 60 * time.Second

// Keeper refreshes the sudo credential on a timer. The refresh goroutine is
// bound to the context passed to Start and cannot outlive the run: Stop (or
// context cancellation) terminates it and waits for it to exit. An orphaned
// refresh loop would keep elevated credentials cached indefinitely.
type Keeper struct {
	exec     execx.Executor
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a keeper with the given refresh interval.
func New(exec execx.Executor, interval time.Duration) *Keeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Keeper{exec: exec, interval: interval}
}

// Start triggers one interactive sudo prompt, then launches the background
// refresh loop. Returns the prompt's error without starting the loop.
func (k *Keeper) Start(ctx context.Context) error {
	if err := k.exec.RunInteractive(ctx, "sudo", "-v"); err != nil {
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	k.cancel = cancel
	k.done = make(chan struct{})

	go func() {
		defer close(k.done)
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				// Non-interactive refresh; a failure here only means the
				// next privileged command prompts again.
				_, _ = k.exec.Run(loopCtx, "sudo", "-n", "-v")
			}
		}
	}()

	return nil
}

// Stop terminates the refresh loop and waits for it to exit. Safe to call
// multiple times and before Start.
func (k *Keeper) Stop() {
	if k.cancel == nil {
		return
	}
	k.cancel()
	<-k.done
	k.cancel = nil
}
