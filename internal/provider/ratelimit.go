package provider

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pacer enforces a minimum spacing between outbound calls to the same
// provider. It is shared process-wide so ad-hoc analysis requests and the
// monitor loop draw from the same call budget.
type pacer struct {
	mu       sync.Mutex
	interval time.Duration
	limiters map[string]*rate.Limiter
}

func newPacer(minInterval time.Duration) *pacer {
	return &pacer{
		interval: minInterval,
		limiters: make(map[string]*rate.Limiter),
	}
}

// wait blocks until the provider's next call slot, or until ctx is done.
func (p *pacer) wait(ctx context.Context, providerName string) error {
	p.mu.Lock()
	lim, ok := p.limiters[providerName]
	if !ok {
		lim = rate.NewLimiter(rate.Every(p.interval), 1)
		p.limiters[providerName] = lim
	}
	p.mu.Unlock()
	return lim.Wait(ctx)
}
