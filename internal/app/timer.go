package app

import (
	"context"
	"time"

	"github.com/bft-labs/gelfship/internal/domain"
)

// StartTimer emits a flush event into ch every frequency until ctx is done.
// It returns immediately. Sends into a closed channel are dropped and the
// timer keeps ticking, so with context.Background() it lives as long as the
// process. A non-positive frequency starts nothing.
func StartTimer(ctx context.Context, frequency time.Duration, ch *EventChannel) {
	if frequency <= 0 {
		return
	}
	go runTimer(ctx, frequency, ch)
}

func runTimer(ctx context.Context, frequency time.Duration, ch *EventChannel) {
	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			_ = ch.SendContext(ctx, domain.FlushEvent())
		}
	}
}
