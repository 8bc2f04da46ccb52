package ioresolve

import (
	"context"
	"time"

	"github.com/cheggaaa/pb/v3"
)

// progress wraps a progress bar, nil bar means progress is hidden.
type progress struct {
	bar *pb.ProgressBar
}

func newProgress(total int, prefix string, show bool) *progress {
	if !show || total == 0 {
		return &progress{}
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return &progress{bar: bar}
}

func (p *progress) add(n int) {
	if p.bar != nil {
		p.bar.Add(n)
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// sleep pauses for the delay or until the context is done.
func (o options) sleep(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	if o.sleeper != nil {
		o.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
