package inngest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// New creates an InngestClient and registers the match-completed function.
func New(inngestClient inngestgo.Client, h *Handler) (InngestClient, error) {
	c := &client{
		inngestClient: inngestClient,
		handler:       h,
	}
	if _, err := c.createMatchCompletedFunction(); err != nil {
		return nil, fmt.Errorf("failed to create function: %w", err)
	}
	return c, nil
}

func (i *client) createMatchCompletedFunction() (inngestgo.ServableFunction, error) {
	config := inngestgo.FunctionOpts{
		ID:   "match-completed",
		Name: "Archive and announce a completed match",
	}
	return inngestgo.CreateFunction(
		i.inngestClient,
		config,
		inngestgo.EventTrigger(EventMatchCompleted, nil),
		func(ctx context.Context, input inngestgo.Input[MatchCompleted]) (any, error) {
			data := input.Event.Data

			// Steps are retried independently; a failed notification does not re-run the archive.
			slug, err := step.Run(ctx, "archive", func(ctx context.Context) (string, error) {
				archived, err := i.handler.Archive(ctx, data)
				if err != nil {
					return "", err
				}
				return archived.Slug, nil
			})
			if err != nil {
				return nil, err
			}

			_, err = step.Run(ctx, "tally", func(ctx context.Context) (bool, error) {
				i.handler.Tally()
				return true, nil
			})
			if err != nil {
				return nil, err
			}

			_, err = step.Run(ctx, "notify-result", func(ctx context.Context) (bool, error) {
				return true, i.handler.Notify(data)
			})
			if err != nil {
				return nil, err
			}

			log.Info("Completed match processed", "slug", slug)
			return slug, nil
		},
	)
}

func (i *client) Serve() http.Handler {
	return i.inngestClient.Serve()
}

func (i *client) SendMatchCompleted(ctx context.Context, data MatchCompleted) error {
	payload, err := eventData(data)
	if err != nil {
		return err
	}
	id, err := i.inngestClient.Send(ctx, inngestgo.Event{Name: EventMatchCompleted, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to send %s: %w", EventMatchCompleted, err)
	}
	log.Info("Sent inngest event", "name", EventMatchCompleted, "id", id)
	return nil
}

// eventData converts the payload into the generic map Inngest events carry.
func eventData(data MatchCompleted) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event data: %w", err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event data: %w", err)
	}
	return out, nil
}
