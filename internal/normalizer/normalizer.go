package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/devchain-network/gitfeed/internal/cerrors"
	"github.com/devchain-network/gitfeed/internal/humantime"
	"github.com/devchain-network/gitfeed/internal/storage"
)

// github event type labels and pull request sub-actions.
const (
	EventTypePush        = "push"
	EventTypePullRequest = "pull_request"

	pullRequestActionOpened = "opened"
	pullRequestActionClosed = "closed"
	pullRequestActionMerged = "merged"

	branchRefPrefix = "refs/heads/"
)

// NormalizeFunc represents normalize function type.
type NormalizeFunc func(eventType string, payload []byte) (*storage.Event, error)

// stringAt walks the payload along the given key path and returns the value
// as string. Missing keys, nulls and type mismatches all degrade to empty
// string, extraction never fails.
func stringAt(payload []byte, keys ...string) string {
	value, err := jsonparser.GetString(payload, keys...)
	if err != nil {
		return ""
	}

	return value
}

// intAt is stringAt for numeric values, rendered as decimal string.
func intAt(payload []byte, keys ...string) string {
	value, err := jsonparser.GetInt(payload, keys...)
	if err != nil {
		return ""
	}

	return strconv.FormatInt(value, 10)
}

func normalizePush(payload []byte) *storage.Event {
	branch := strings.TrimPrefix(stringAt(payload, "ref"), branchRefPrefix)

	author := stringAt(payload, "pusher", "name")
	if author == "" {
		author = stringAt(payload, "head_commit", "author", "name")
	}

	commitID := stringAt(payload, "head_commit", "id")

	return &storage.Event{
		Identifier: commitID,
		Author:     author,
		Action:     storage.ActionPush,
		ToBranch:   branch,
		Timestamp:  stringAt(payload, "head_commit", "timestamp"),
		RequestID:  commitID,
	}
}

func normalizePullRequest(payload []byte) (*storage.Event, error) {
	subAction := stringAt(payload, "action")

	prID := intAt(payload, "pull_request", "id")
	fromBranch := stringAt(payload, "pull_request", "head", "ref")
	toBranch := stringAt(payload, "pull_request", "base", "ref")

	switch subAction {
	case pullRequestActionMerged:
		author := stringAt(payload, "pull_request", "merged_by", "login")
		if author == "" {
			author = stringAt(payload, "pull_request", "user", "login")
		}

		return &storage.Event{
			Identifier: prID,
			Author:     author,
			Action:     storage.ActionMerge,
			FromBranch: fromBranch,
			ToBranch:   toBranch,
			Timestamp:  stringAt(payload, "pull_request", "merged_at"),
			RequestID:  prID,
		}, nil
	case pullRequestActionOpened, pullRequestActionClosed:
		timestampKey := "updated_at"
		if subAction == pullRequestActionOpened {
			timestampKey = "created_at"
		}

		return &storage.Event{
			Identifier: prID,
			Author:     stringAt(payload, "pull_request", "user", "login"),
			Action:     storage.ActionPullRequest,
			FromBranch: fromBranch,
			ToBranch:   toBranch,
			Timestamp:  stringAt(payload, "pull_request", timestampKey),
			RequestID:  prID,
		}, nil
	default:
		return nil, fmt.Errorf(
			"normalizer.Normalize pull request action error: [%w, '%s' received]",
			cerrors.ErrEventNotTracked, subAction,
		)
	}
}

// Normalize classifies the webhook payload by event type label and produces
// a canonical event. Event types other than push and pull_request, and pull
// request sub-actions other than opened/closed/merged, yield an error
// wrapping cerrors.ErrEventNotTracked; this is a skip verdict, not a
// failure.
func Normalize(eventType string, payload []byte) (*storage.Event, error) {
	var event *storage.Event

	switch eventType {
	case EventTypePush:
		event = normalizePush(payload)
	case EventTypePullRequest:
		var err error
		event, err = normalizePullRequest(payload)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf(
			"normalizer.Normalize event type error: [%w, '%s' received]",
			cerrors.ErrEventNotTracked, eventType,
		)
	}

	if event.Timestamp != "" {
		event.Timestamp = humantime.Format(event.Timestamp)
	}

	return event, nil
}
