package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/wicketkeeper/internal/config"
	"github.com/mauv0809/wicketkeeper/internal/http/handlers"
	"github.com/mauv0809/wicketkeeper/internal/live"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/mauv0809/wicketkeeper/internal/session"
	"github.com/mauv0809/wicketkeeper/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

type testServer struct {
	*Server
	session  *session.Session
	store    *store.MockStore
	tallies  *metrics.StoreMock
	notifier *notifier.Mock
	board    *live.Board
}

// setupTestServer initializes a new server around a real session and mock collaborators.
func setupTestServer(t *testing.T, slackSigningSecret string) *testServer {
	t.Helper()

	st := store.NewMock()
	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	tallies := metrics.NewStoreMock()
	n := notifier.NewMock()
	board := live.NewBoard()

	sess := session.New(scoring.NewEngine(), st, metricsSvc, session.Options{Tallies: tallies})
	t.Cleanup(sess.Close)

	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}
	server := NewServer(sess, st, tallies, metrics.NewMetricsHandler(reg), n, board, cfg, nil)
	return &testServer{Server: server, session: sess, store: st, tallies: tallies, notifier: n, board: board}
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) handlers.StateResponse {
	t.Helper()
	var resp handlers.StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func startMatch(t *testing.T, s *testServer) {
	t.Helper()
	rr := s.do(t, "POST", "/match/start", map[string]any{"team_a": "Lions", "team_b": "Tigers", "total_overs": 2, "batting_first": "TeamA"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = s.do(t, "POST", "/match/openers", map[string]any{"striker": "Alice", "non_striker": "Bob", "bowler": "Cara"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req, err := http.NewRequest("POST", targetURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server := setupTestServer(t, "")

	rr := server.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestStateHandler_Idle(t *testing.T) {
	server := setupTestServer(t, "")

	rr := server.do(t, "GET", "/state", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	resp := decodeState(t, rr)
	assert.Equal(t, scoring.StatusSetup, resp.State.Status)
	assert.Equal(t, 0, resp.UndoAvailable)
}

func TestEventHandlers_PlayABall(t *testing.T) {
	server := setupTestServer(t, "")
	startMatch(t, server)

	rr := server.do(t, "POST", "/match/ball", map[string]any{"runs": 4})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeState(t, rr)
	assert.Equal(t, 4, resp.State.TotalRuns)
	assert.Equal(t, scoring.StatusInProgress, resp.State.Status)
	assert.Nil(t, resp.State.PastStates, "undo stack stays server side")
	assert.Equal(t, 2, resp.UndoAvailable)

	rr = server.do(t, "POST", "/match/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, decodeState(t, rr).State.TotalRuns)

	assert.Equal(t, 0, server.session.State().TotalRuns)
}

func TestEventHandlers_Rejections(t *testing.T) {
	server := setupTestServer(t, "")

	tests := []struct {
		name     string
		target   string
		body     any
		expected int
	}{
		{"malformed json", "/match/ball", "{runs:", http.StatusBadRequest},
		{"unknown extra", "/match/ball", map[string]any{"runs": 1, "extra_type": "Beamer"}, http.StatusBadRequest},
		{"unknown wicket", "/match/ball", map[string]any{"runs": 0, "wicket_type": "Timed Out"}, http.StatusBadRequest},
		{"unknown side", "/match/start", map[string]any{"team_a": "A", "team_b": "B", "total_overs": 5, "batting_first": "TeamC"}, http.StatusBadRequest},
		{"ball before the match starts", "/match/ball", map[string]any{"runs": 1}, http.StatusConflict},
		{"undo with nothing to undo", "/match/undo", nil, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := server.do(t, "POST", tt.target, tt.body)
			assert.Equal(t, tt.expected, rr.Code, rr.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}

	t.Run("conflict carries the unchanged state", func(t *testing.T) {
		rr := server.do(t, "POST", "/match/next-innings", nil)
		require.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, scoring.StatusSetup, decodeState(t, rr).State.Status)
	})

	t.Run("wrong method", func(t *testing.T) {
		rr := server.do(t, "GET", "/match/ball", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}

func TestScorecardHandler(t *testing.T) {
	server := setupTestServer(t, "")
	startMatch(t, server)
	server.do(t, "POST", "/match/ball", map[string]any{"runs": 6})

	rr := server.do(t, "GET", "/scorecard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var card scoring.Scorecard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &card))
	require.NotNil(t, card.FirstInnings)
	assert.Equal(t, 6, card.FirstInnings.Total)
	assert.Equal(t, "Lions", card.FirstInnings.BattingTeam)
}

func TestArchiveHandlers(t *testing.T) {
	server := setupTestServer(t, "")
	var limitSeen int
	server.store.ListArchivedFunc = func(ctx context.Context, limit int) ([]store.ArchivedMatch, error) {
		limitSeen = limit
		return []store.ArchivedMatch{{Slug: "lions-vs-tigers", Result: "Lions won by 3 runs"}}, nil
	}
	server.store.GetArchivedFunc = func(ctx context.Context, slug string) (store.ArchivedMatch, error) {
		if slug == "lions-vs-tigers" {
			return store.ArchivedMatch{Slug: slug, Winner: "Lions"}, nil
		}
		return store.ArchivedMatch{}, store.ErrNotFound
	}

	t.Run("list", func(t *testing.T) {
		rr := server.do(t, "GET", "/archive?limit=5", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var matches []store.ArchivedMatch
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, 5, limitSeen)
	})

	t.Run("bad limit uses the default", func(t *testing.T) {
		rr := server.do(t, "GET", "/archive?limit=lots", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 0, limitSeen)
	})

	t.Run("get", func(t *testing.T) {
		rr := server.do(t, "GET", "/archive/lions-vs-tigers", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"winner":"Lions"`)
	})

	t.Run("not found", func(t *testing.T) {
		rr := server.do(t, "GET", "/archive/nope", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("storage error", func(t *testing.T) {
		server.store.ListArchivedFunc = func(ctx context.Context, limit int) ([]store.ArchivedMatch, error) {
			return nil, errors.New("database is locked")
		}
		rr := server.do(t, "GET", "/archive", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestStatsHandler(t *testing.T) {
	server := setupTestServer(t, "")
	startMatch(t, server)
	server.session.Close()

	rr := server.do(t, "GET", "/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats[metrics.KeyMatchesStarted])
}

func TestMetricsHandler(t *testing.T) {
	server := setupTestServer(t, "")
	startMatch(t, server)

	rr := server.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cricket_events_applied_total")
}

func TestLiveHandlers(t *testing.T) {
	server := setupTestServer(t, "")

	push := func(t *testing.T, update live.Update) *httptest.ResponseRecorder {
		t.Helper()
		raw, err := msgpack.Marshal(update)
		require.NoError(t, err)
		envelope := map[string]any{
			"subscription": "projects/test/subscriptions/live",
			"message":      map[string]any{"data": base64.StdEncoding.EncodeToString(raw), "messageId": "1"},
		}
		return server.do(t, "POST", "/pubsub/live-updates", envelope)
	}

	rr := push(t, live.Update{MatchID: "m1", Score: "32/2", BattingTeam: "Lions", UpdatedAt: time.Now().UTC()})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = server.do(t, "GET", "/live/m1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got live.Update
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "32/2", got.Score)

	rr = server.do(t, "GET", "/live", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []live.Update
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	assert.Equal(t, http.StatusNotFound, server.do(t, "GET", "/live/m2", nil).Code)

	t.Run("bad envelope", func(t *testing.T) {
		rr := server.do(t, "POST", "/pubsub/live-updates", "not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("undecodable payload is acknowledged", func(t *testing.T) {
		envelope := map[string]any{"message": map[string]any{"data": base64.StdEncoding.EncodeToString([]byte("garbage"))}}
		rr := server.do(t, "POST", "/pubsub/live-updates", envelope)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, server.board.List(), 1)
	})
}

func TestScoreCommandHandler(t *testing.T) {
	server := setupTestServer(t, testSlackSigningSecret)
	server.notifier.FormatScoreFunc = func(state scoring.MatchState) (any, error) {
		return slack.Message{Msg: slack.Msg{Text: fmt.Sprintf("%s %d/%d", state.BattingTeam, state.TotalRuns, state.Wickets), ResponseType: slack.ResponseTypeInChannel}}, nil
	}
	startMatch(t, server)
	server.do(t, "POST", "/match/ball", map[string]any{"runs": 2})

	form := url.Values{}
	form.Set("command", "/score")
	form.Set("user_name", "scorer")

	t.Run("signed request", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/score", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var msg slack.Message
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
		assert.Equal(t, "Lions 2/0", msg.Text)
		assert.Equal(t, slack.ResponseTypeInChannel, msg.ResponseType)
	})

	t.Run("bad signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/score", form, "wrong-secret")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("formatter returns something else", func(t *testing.T) {
		server.notifier.FormatScoreFunc = func(state scoring.MatchState) (any, error) {
			return "plain text", nil
		}
		req := createSlackCommandRequest(t, "/slack/command/score", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestParamsMiddleware_DryRun(t *testing.T) {
	var seen bool
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.IsDryRun(r.Context())
	}), paramsMiddleware)

	req := httptest.NewRequest("GET", "/state?dry_run=true", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, seen)

	req = httptest.NewRequest("GET", "/state", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, seen)
}
