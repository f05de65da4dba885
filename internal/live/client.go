package live

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vmihailenco/msgpack/v5"
)

type client struct {
	pub publisher
	now func() time.Time
}

// New creates a Client publishing to Pub/Sub topics in projectID.
func New(ctx context.Context, projectID string) (Client, error) {
	c, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return newClient(&pubsubPublisher{client: c}), nil
}

func newClient(pub publisher) *client {
	return &client{pub: pub, now: time.Now}
}

func (c *client) CreateMatch(ctx context.Context, match NewMatch) (string, error) {
	msg := MatchCreated{
		ID:         uuid.NewString(),
		Key:        MatchKey(match),
		TeamA:      match.TeamA,
		TeamB:      match.TeamB,
		TotalOvers: match.TotalOvers,
		CreatedAt:  c.now().UTC(),
	}
	if err := c.send(ctx, TopicMatchCreated, msg); err != nil {
		return "", err
	}
	log.Info("Created live match", "id", msg.ID, "key", msg.Key)
	return msg.ID, nil
}

func (c *client) PushUpdate(ctx context.Context, update Update) error {
	if update.MatchID == "" {
		return fmt.Errorf("live update has no match id")
	}
	update.UpdatedAt = c.now().UTC()
	return c.send(ctx, TopicMatchUpdated, update)
}

func (c *client) Close() error {
	return c.pub.Close()
}

func (c *client) send(ctx context.Context, topic Topic, data any) error {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	serverID, err := c.pub.Publish(ctx, string(topic), payload)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	log.Debug("Published live message", "topic", topic, "serverID", serverID)
	return nil
}

// MatchKey is the readable key of a live match, built from the teams and overs.
func MatchKey(match NewMatch) string {
	return slug.Make(match.TeamA + " vs " + match.TeamB + " " + strconv.Itoa(match.TotalOvers) + " overs")
}

// Decode unpacks a message published by this package into v.
func Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

type pubsubPublisher struct {
	client *pubsub.Client
}

func (p *pubsubPublisher) Publish(ctx context.Context, topic string, data []byte) (string, error) {
	result := p.client.Topic(topic).Publish(ctx, &pubsub.Message{Data: data})
	return result.Get(ctx)
}

func (p *pubsubPublisher) Close() error {
	return p.client.Close()
}
