package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"esprit-rooms-backend/internal/models"
)

// ErrDatasetUnavailable marks a schedule dataset that cannot be read or
// parsed. It is the only fatal error kind: queries propagate it as a
// server-side failure rather than an empty result.
var ErrDatasetUnavailable = errors.New("schedule dataset unavailable")

// Source yields the full schedule dataset. A load returns the complete,
// immutable dataset for one query; the core never partially reads it.
type Source interface {
	LoadSchedules(ctx context.Context) (models.ScheduleSet, error)
}

func decodeSchedules(data []byte) (models.ScheduleSet, error) {
	var set models.ScheduleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrDatasetUnavailable, err)
	}
	return set, nil
}
