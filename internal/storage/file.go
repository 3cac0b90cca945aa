package storage

import (
	"context"
	"fmt"
	"os"

	"esprit-rooms-backend/internal/models"
)

// FileSource reads the schedule dataset from a local JSON export.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrDatasetUnavailable, s.Path, err)
	}
	return decodeSchedules(data)
}
