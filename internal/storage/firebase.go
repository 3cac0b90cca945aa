package storage

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"esprit-rooms-backend/internal/models"
)

const (
	refSchedules  = "schedules"
	refFreeRooms  = "free_rooms"
	refLastUpdate = "last_global_update"
)

// FirebaseSource reads the schedule dataset from a Realtime Database and
// can publish the precomputed free-rooms snapshot back to it.
type FirebaseSource struct {
	client *db.Client
}

func NewFirebaseSource(ctx context.Context, credFile string, dbURL string) (*FirebaseSource, error) {
	sa := option.WithCredentialsFile(credFile)
	conf := &firebase.Config{DatabaseURL: dbURL}

	app, err := firebase.NewApp(ctx, conf, sa)
	if err != nil {
		return nil, fmt.Errorf("error init app: %v", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error init db: %v", err)
	}

	return &FirebaseSource{client: client}, nil
}

func (s *FirebaseSource) LoadSchedules(ctx context.Context) (models.ScheduleSet, error) {
	var set models.ScheduleSet
	if err := s.client.NewRef(refSchedules).Get(ctx, &set); err != nil {
		return nil, fmt.Errorf("%w: firebase get: %v", ErrDatasetUnavailable, err)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: firebase: %q ref is empty", ErrDatasetUnavailable, refSchedules)
	}
	return set, nil
}

// PublishSnapshot writes the free-rooms snapshot and bumps the global
// update marker.
func (s *FirebaseSource) PublishSnapshot(ctx context.Context, snap models.FreeRoomsSnapshot) error {
	if err := s.client.NewRef(refFreeRooms).Set(ctx, snap); err != nil {
		return fmt.Errorf("failed to save free rooms: %v", err)
	}
	if err := s.client.NewRef(refLastUpdate).Set(ctx, snap.LastUpdate); err != nil {
		return fmt.Errorf("failed to save update marker: %v", err)
	}
	return nil
}
