package folio

import "context"

// Store is the read side the handlers depend on. Implementations run one
// statement per call and must return rows already in the documented order.
type Store interface {
	// ListDevlog returns devlog rows newest first. limit <= 0 means no limit.
	ListDevlog(ctx context.Context, limit int) ([]DevlogRecord, error)
	// ListDevlogStamps returns id and date of every devlog row, newest first.
	ListDevlogStamps(ctx context.Context) ([]DevlogStamp, error)
	// ListProjects returns featured projects first, each group by id descending.
	ListProjects(ctx context.Context) ([]ProjectRecord, error)
	Close() error
}

// FeedLimit caps the number of items in the RSS feed.
const FeedLimit = 20
