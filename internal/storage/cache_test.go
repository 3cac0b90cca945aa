package storage

import (
	"context"
	"errors"
	"testing"

	"esprit-rooms-backend/internal/models"
)

type countingSource struct {
	set   models.ScheduleSet
	err   error
	loads int
}

func (c *countingSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	c.loads++
	return c.set, c.err
}

func TestCachedSourceLoadsOnce(t *testing.T) {
	inner := &countingSource{set: models.ScheduleSet{"A": {}}}
	cached := NewCachedSource(inner)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		set, err := cached.LoadSchedules(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(set) != 1 {
			t.Fatalf("set = %v, want the cached dataset", set)
		}
	}
	if inner.loads != 1 {
		t.Fatalf("inner loads = %d, want 1", inner.loads)
	}
}

func TestCachedSourceRefreshSwaps(t *testing.T) {
	inner := &countingSource{set: models.ScheduleSet{"A": {}}}
	cached := NewCachedSource(inner)

	ctx := context.Background()
	if _, err := cached.LoadSchedules(ctx); err != nil {
		t.Fatal(err)
	}

	inner.set = models.ScheduleSet{"A": {}, "B": {}}
	if _, err := cached.Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	set, err := cached.LoadSchedules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 {
		t.Fatalf("set = %v, want the refreshed dataset", set)
	}
}

func TestCachedSourceKeepsLastGoodOnFailure(t *testing.T) {
	inner := &countingSource{set: models.ScheduleSet{"A": {}}}
	cached := NewCachedSource(inner)

	ctx := context.Background()
	if _, err := cached.LoadSchedules(ctx); err != nil {
		t.Fatal(err)
	}

	inner.err = errors.New("upstream down")
	if _, err := cached.Refresh(ctx); err == nil {
		t.Fatal("refresh should fail")
	}

	set, err := cached.LoadSchedules(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 1 {
		t.Fatalf("set = %v, want the previous dataset preserved", set)
	}
}
