package inngest

import (
	"context"
	"net/http"
)

// CompletionSender hands a completed match to whatever runs the completion steps.
type CompletionSender interface {
	SendMatchCompleted(ctx context.Context, data MatchCompleted) error
}

// InngestClient runs the completion steps as a durable Inngest function.
type InngestClient interface {
	CompletionSender
	Serve() http.Handler
}
