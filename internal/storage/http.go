package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"esprit-rooms-backend/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTPSource reads the schedule dataset from an HTTP(S) endpoint. Changed
// lets the refresh job probe the resource cheaply before re-downloading.
type HTTPSource struct {
	URL string

	client *http.Client
	probe  *http.Client
	log    *zap.Logger

	mu           sync.Mutex
	lastModified string
}

func NewHTTPSource(url string, log *zap.Logger) *HTTPSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPSource{
		URL:    url,
		client: &http.Client{Timeout: 60 * time.Second},
		probe:  &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (s *HTTPSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrDatasetUnavailable, s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %d", ErrDatasetUnavailable, s.URL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrDatasetUnavailable, s.URL, err)
	}
	return decodeSchedules(data)
}

// Changed sends a HEAD request and reports whether the Last-Modified header
// moved since the previous probe. The first probe always reports a change;
// probe failures report no change so a flaky upstream keeps the last good
// dataset.
func (s *HTTPSource) Changed(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := s.probe.Do(req)
	if err != nil {
		s.log.Warn("schedule HEAD probe failed", zap.String("url", s.URL), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("schedule HEAD probe rejected",
			zap.String("url", s.URL),
			zap.Int("status", resp.StatusCode),
			zap.Duration("took", time.Since(start)))
		return false
	}

	newLastModified := resp.Header.Get("Last-Modified")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastModified == "" {
		s.lastModified = newLastModified
		s.log.Info("schedule source first probe, update required",
			zap.String("url", s.URL), zap.Duration("took", time.Since(start)))
		return true
	}
	if newLastModified == s.lastModified {
		s.log.Debug("schedule source unchanged",
			zap.String("url", s.URL), zap.String("last_modified", newLastModified))
		return false
	}

	s.log.Info("schedule source update detected",
		zap.String("url", s.URL),
		zap.String("old", s.lastModified),
		zap.String("new", newLastModified))
	s.lastModified = newLastModified
	return true
}
