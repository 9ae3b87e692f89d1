package registry

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/pmst"
	"golang.org/x/time/rate"
)

var _ pmst.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests with one token bucket per host. Every
// registry kind is served from the same host, so one limiter shared across
// batches bounds the total request rate against it.
type DomainLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:     rps,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to domain is allowed. Domain may be a bare
// host or a full URL; hosts compare case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.bucket(strings.ToLower(host(domain))).Wait(ctx)
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[key] = b
	}
	return b
}
