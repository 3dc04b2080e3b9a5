package storage

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// constants.
const (
	DefaultDBPingBackoff    = 2 * time.Second
	DefaultDBPingMaxRetries = 10
	DefaultDBPingTimeout    = 5 * time.Second

	DefaultLatestEventsLimit = 50

	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

var validActions = []Action{
	ActionPush,
	ActionPullRequest,
	ActionMerge,
}

// Action represents normalized kind of repository activity.
type Action string

func (a Action) String() string {
	return string(a)
}

// Valid checks if the Action is valid.
func (a Action) Valid() bool {
	return slices.Contains(validActions, a)
}

// Event represents `events` table fields, the canonical record every
// webhook payload is normalized into. RequestID always equals Identifier.
type Event struct {
	CreatedAt  time.Time `json:"created_at"`
	Identifier string    `json:"id"`
	Author     string    `json:"author"`
	Action     Action    `json:"action"`
	FromBranch string    `json:"from_branch"`
	ToBranch   string    `json:"to_branch"`
	Timestamp  string    `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	ID         uuid.UUID `json:"_id"`
}

// Pinger ...
type Pinger interface {
	Ping(maxRetries uint8, backoff time.Duration) error
}

// EventStorer defines insert and query operations for events.
type EventStorer interface {
	Store(ctx context.Context, event *Event) (uuid.UUID, error)
	Latest(ctx context.Context, limit int) ([]Event, error)
}

// EventPingStorer combines ping and store behaviours.
type EventPingStorer interface {
	Pinger
	EventStorer
}
