package eventstorage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ storage.Pinger          = (*EventStorage)(nil) // compile time proof
	_ storage.EventPingStorer = (*EventStorage)(nil) // compile time proof
)

// EventStorage implements storage.EventPingStorer on a pgx connection pool.
type EventStorage struct {
	Logger *slog.Logger
	Pool   *pgxpool.Pool
	DSN    string
}

// Ping pings the database with exponential backoff.
func (s EventStorage) Ping(maxRetries uint8, backoff time.Duration) error {
	var pingErr error

	ctx, cancel := context.WithTimeout(context.Background(), storage.DefaultDBPingTimeout)
	defer cancel()

	for i := range maxRetries {
		pingErr = s.Pool.Ping(ctx)
		if pingErr == nil {
			s.Logger.Info("successfully pinged the database")

			break
		}

		s.Logger.Error(
			"can not ping the database",
			"error", pingErr,
			"retry", fmt.Sprintf("%d/%d", i, maxRetries),
			"backoff", backoff.String(),
		)
		time.Sleep(backoff)
		backoff *= 2
	}

	if pingErr != nil {
		return fmt.Errorf("eventstorage.Ping error: [%w]", pingErr)
	}

	return nil
}

// Store inserts the event and returns the store assigned id. CreatedAt is
// assigned by the database, never taken from the event.
func (s EventStorage) Store(ctx context.Context, event *storage.Event) (uuid.UUID, error) {
	if event == nil {
		return uuid.Nil, fmt.Errorf("eventstorage.Store event error: [%w]", cerrors.ErrValueRequired)
	}

	if !event.Action.Valid() {
		return uuid.Nil, fmt.Errorf(
			"eventstorage.Store event.Action error: [%w, '%s' received]",
			cerrors.ErrInvalid, event.Action,
		)
	}

	var id uuid.UUID
	err := s.Pool.QueryRow(
		ctx,
		eventStoreQuery,
		event.Identifier,
		event.Author,
		event.Action.String(),
		event.FromBranch,
		event.ToBranch,
		event.Timestamp,
		event.RequestID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("eventstorage.Store error: [%w]", err)
	}

	return id, nil
}

// Latest fetches up to limit events, newest first by created_at.
func (s EventStorage) Latest(ctx context.Context, limit int) ([]storage.Event, error) {
	if limit <= 0 {
		return nil, fmt.Errorf(
			"eventstorage.Latest limit error: [%w, '%d' received, must > 0]",
			cerrors.ErrInvalid, limit,
		)
	}

	rows, err := s.Pool.Query(ctx, eventLatestQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("eventstorage.Latest query error: [%w]", err)
	}
	defer rows.Close()

	events := make([]storage.Event, 0, limit)

	for rows.Next() {
		var event storage.Event
		if err = rows.Scan(
			&event.ID,
			&event.Identifier,
			&event.Author,
			&event.Action,
			&event.FromBranch,
			&event.ToBranch,
			&event.Timestamp,
			&event.RequestID,
			&event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("eventstorage.Latest scan error: [%w]", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("eventstorage.Latest rows error: [%w]", err)
	}

	return events, nil
}

// Option represents option function type.
type Option func(*EventStorage) error

// WithLogger sets logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *EventStorage) error {
		if l == nil {
			return fmt.Errorf("eventstorage.WithLogger error: [%w]", cerrors.ErrValueRequired)
		}
		s.Logger = l

		return nil
	}
}

// WithDSN sets database connection dsn.
func WithDSN(s string) Option {
	return func(es *EventStorage) error {
		if s == "" {
			return fmt.Errorf("eventstorage.WithDSN error: [%w]", cerrors.ErrValueRequired)
		}
		es.DSN = s

		return nil
	}
}

// New instantiates new event storage with a pgx connection pool.
func New(options ...Option) (*EventStorage, error) {
	eventStorage := new(EventStorage)

	for _, option := range options {
		if err := option(eventStorage); err != nil {
			return nil, fmt.Errorf("eventstorage.New option error: [%w]", err)
		}
	}

	if eventStorage.Logger == nil {
		return nil, fmt.Errorf("eventstorage.New Logger error: [%w]", cerrors.ErrValueRequired)
	}

	if eventStorage.DSN == "" {
		return nil, fmt.Errorf("eventstorage.New DSN error: [%w]", cerrors.ErrValueRequired)
	}

	config, err := pgxpool.ParseConfig(eventStorage.DSN)
	if err != nil {
		return nil, fmt.Errorf("eventstorage.New pgxpool.ParseConfig error: [%w]", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("eventstorage.New pgxpool.NewWithConfig error: [%w]", err)
	}

	eventStorage.Pool = pool

	return eventStorage, nil
}
