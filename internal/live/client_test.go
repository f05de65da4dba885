package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic string
	data  []byte
}

// fakePublisher records what would have been sent to Pub/Sub.
type fakePublisher struct {
	mu       sync.Mutex
	messages []published
	err      error
	closed   bool
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, published{topic: topic, data: data})
	return "server-id", nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
}

func TestCreateMatch(t *testing.T) {
	pub := &fakePublisher{}
	c := newClient(pub)
	c.now = fixedClock

	id, err := c.CreateMatch(context.Background(), NewMatch{TeamA: "Royal Lions", TeamB: "Tigers", TotalOvers: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, string(TopicMatchCreated), pub.messages[0].topic)

	var msg MatchCreated
	require.NoError(t, Decode(pub.messages[0].data, &msg))
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, "royal-lions-vs-tigers-20-overs", msg.Key)
	assert.Equal(t, 20, msg.TotalOvers)
	assert.True(t, fixedClock().Equal(msg.CreatedAt))
}

func TestCreateMatch_PublishFails(t *testing.T) {
	pub := &fakePublisher{err: errors.New("topic not found")}
	c := newClient(pub)

	id, err := c.CreateMatch(context.Background(), NewMatch{TeamA: "A", TeamB: "B", TotalOvers: 5})
	require.Error(t, err)
	assert.Empty(t, id)
}

func TestPushUpdate(t *testing.T) {
	pub := &fakePublisher{}
	c := newClient(pub)
	c.now = fixedClock

	s := scoring.NewMatchState()
	s.Status = scoring.StatusInProgress
	s.BattingTeam = "Lions"
	s.TotalRuns = 42
	s.Wickets = 3
	s.Overs = 5
	s.BallsInCurrentOver = 2

	require.NoError(t, c.PushUpdate(context.Background(), UpdateFromState("m1", s)))
	require.Len(t, pub.messages, 1)
	assert.Equal(t, string(TopicMatchUpdated), pub.messages[0].topic)

	var got Update
	require.NoError(t, Decode(pub.messages[0].data, &got))
	assert.Equal(t, "m1", got.MatchID)
	assert.Equal(t, "42/3", got.Score)
	assert.InDelta(t, 5.2, got.Overs, 1e-9)
	assert.Equal(t, scoring.StatusInProgress, got.Status)
	assert.Empty(t, got.Winner)

	assert.Error(t, c.PushUpdate(context.Background(), Update{}), "an update needs a match id")
	assert.Len(t, pub.messages, 1)

	require.NoError(t, c.Close())
	assert.True(t, pub.closed)
}
