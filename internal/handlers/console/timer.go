package console

import (
	"context"
	"time"
)

// Countdown calls onTick every interval with the remaining time, then once
// more with zero when d has elapsed. It returns ctx.Err() if cancelled first.
func Countdown(ctx context.Context, d, interval time.Duration, onTick func(remaining time.Duration)) error {
	if d <= 0 {
		onTick(0)
		return nil
	}
	if interval <= 0 || interval > d {
		interval = d
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	deadline := time.Now().Add(d)
	onTick(d)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			remaining := deadline.Sub(now).Round(interval)
			if remaining <= 0 {
				onTick(0)
				return nil
			}
			onTick(remaining)
		}
	}
}
