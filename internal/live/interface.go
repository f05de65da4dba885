package live

import "context"

// Client mirrors a match to the remote live-match feed. Failures are reported to
// the caller and never affect scoring.
type Client interface {
	// CreateMatch registers a new live match and returns its opaque ID.
	CreateMatch(ctx context.Context, match NewMatch) (string, error)
	// PushUpdate publishes the current score of a live match.
	PushUpdate(ctx context.Context, update Update) error
	Close() error
}

// publisher is the part of a Pub/Sub topic client we use.
type publisher interface {
	Publish(ctx context.Context, topic string, data []byte) (string, error)
	Close() error
}
