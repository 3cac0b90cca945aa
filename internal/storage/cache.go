package storage

import (
	"context"
	"sync/atomic"

	"esprit-rooms-backend/internal/models"
)

// CachedSource wraps a Source with an in-memory dataset that is swapped
// atomically on Refresh. The cached set is never mutated after the swap, so
// concurrent readers always observe a complete dataset.
type CachedSource struct {
	inner Source
	set   atomic.Pointer[models.ScheduleSet]
}

func NewCachedSource(inner Source) *CachedSource {
	return &CachedSource{inner: inner}
}

func (c *CachedSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	if p := c.set.Load(); p != nil {
		return *p, nil
	}
	return c.Refresh(ctx)
}

// Refresh repopulates the cache from the underlying source. On failure the
// previous dataset stays in place.
func (c *CachedSource) Refresh(ctx context.Context) (models.ScheduleSet, error) {
	set, err := c.inner.LoadSchedules(ctx)
	if err != nil {
		return nil, err
	}
	c.set.Store(&set)
	return set, nil
}
