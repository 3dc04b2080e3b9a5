//nolint:all
package mockstorage

import (
	"context"
	"time"

	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/google/uuid"
)

var _ storage.EventPingStorer = (*Storage)(nil)

// Storage is an in-memory storage.EventPingStorer for tests.
type Storage struct {
	PingErr   error
	StoreErr  error
	LatestErr error
	Events    []storage.Event
}

func (s *Storage) Ping(_ uint8, _ time.Duration) error {
	return s.PingErr
}

func (s *Storage) Store(_ context.Context, event *storage.Event) (uuid.UUID, error) {
	if s.StoreErr != nil {
		return uuid.Nil, s.StoreErr
	}

	stored := *event
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	s.Events = append(s.Events, stored)

	return stored.ID, nil
}

func (s *Storage) Latest(_ context.Context, limit int) ([]storage.Event, error) {
	if s.LatestErr != nil {
		return nil, s.LatestErr
	}

	events := make([]storage.Event, 0, limit)
	for i := len(s.Events) - 1; i >= 0 && len(events) < limit; i-- {
		events = append(events, s.Events[i])
	}

	return events, nil
}
