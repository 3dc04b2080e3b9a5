package eventstorage

const eventStoreQuery = `
INSERT INTO events (
	identifier,
	author,
	action,
	from_branch,
	to_branch,
	"timestamp",
	request_id
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const eventLatestQuery = `
SELECT
	id,
	identifier,
	author,
	action,
	from_branch,
	to_branch,
	"timestamp",
	request_id,
	created_at
FROM events
ORDER BY created_at DESC
LIMIT $1`
