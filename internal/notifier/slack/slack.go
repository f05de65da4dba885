package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/wicketkeeper/internal/metrics"
	"github.com/mauv0809/wicketkeeper/internal/notifier"
	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// topPerformers is how many batsmen and bowlers are listed per innings.
const topPerformers = 3

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendInningsBreak(state scoring.MatchState, dryRun bool) error {
	msg := s.formatInningsBreak(state)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendResult(state scoring.MatchState, dryRun bool) error {
	msg := s.formatResult(state)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatInningsBreak creates the Slack message for the end of the first innings using Block Kit.
func (s *Notifier) formatInningsBreak(state scoring.MatchState) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏏 Innings break: %s vs %s", state.Config.TeamAName, state.Config.TeamBName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	summary := fmt.Sprintf("*%s* %d/%d (%s ov)\n*%s* need *%d* to win from %d overs",
		state.BattingTeam, state.TotalRuns, state.Wickets, formatOvers(state.LegalBalls()),
		state.BowlingTeam, state.TotalRuns+1, state.Config.TotalOvers)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", summary, false, false), nil, nil))

	if lines := battingLines(state.BattingTeamPlayers); lines != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Batting*\n"+lines, false, false), nil, nil))
	}
	if lines := bowlingLines(state.BowlingTeamBowlers); lines != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "*Bowling*\n"+lines, false, false), nil, nil))
	}

	extras := fmt.Sprintf("Extras %d (w %d, nb %d, b %d, lb %d)",
		state.Extras.Total(), state.Extras.Wides, state.Extras.NoBalls, state.Extras.Byes, state.Extras.LegByes)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", extras, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatResult creates the Slack message for a finished match using Block Kit.
func (s *Notifier) formatResult(state scoring.MatchState) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 "+scoring.ResultText(state), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var scores []string
	if f := state.FirstInnings; f != nil {
		scores = append(scores, fmt.Sprintf("*%s* %d/%d (%s ov)", f.BattingTeam, f.Total, f.Wickets, formatOvers(f.Overs*6+f.Balls)))
	}
	scores = append(scores, fmt.Sprintf("*%s* %d/%d (%s ov)", state.BattingTeam, state.TotalRuns, state.Wickets, formatOvers(state.LegalBalls())))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(scores, "\n"), false, false), nil, nil))

	if f := state.FirstInnings; f != nil {
		fields := []*slack.TextBlockObject{
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s batting*\n%s", f.BattingTeam, orDash(battingLines(f.Batsmen))), false, false),
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s batting*\n%s", state.BattingTeam, orDash(battingLines(state.BattingTeamPlayers))), false, false),
		}
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if motm := state.ManOfTheMatch; motm != nil && motm.PlayerID != scoring.NoAward.PlayerID {
		text := fmt.Sprintf("🌟 Man of the match: %s, %s", motm.Name, motm.Reason)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", text, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// FormatScore renders the live score as an in-channel reply.
func (s *Notifier) FormatScore(state scoring.MatchState) (any, error) {
	if state.IsIdle() {
		msg := slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "No match in progress.", false, false), nil, nil))
		msg.ResponseType = slack.ResponseTypeEphemeral
		return msg, nil
	}

	blocks := make([]slack.Block, 0)
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏏 %s vs %s", state.Config.TeamAName, state.Config.TeamBName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	lines := []string{fmt.Sprintf("*%s* %d/%d (%s ov)", state.BattingTeam, state.TotalRuns, state.Wickets, formatOvers(state.LegalBalls()))}
	if f := state.FirstInnings; f != nil {
		lines = append(lines, fmt.Sprintf("%s %d/%d (%s ov)", f.BattingTeam, f.Total, f.Wickets, formatOvers(f.Overs*6+f.Balls)))
	}
	switch {
	case state.Status == scoring.StatusCompleted:
		lines = append(lines, "*"+scoring.ResultText(state)+"*")
	case state.Innings == 2 && state.TargetRuns > 0:
		lines = append(lines, fmt.Sprintf("Need %d from %d balls (RRR %.2f)",
			state.TargetRuns-state.TotalRuns, state.Config.TotalOvers*6-state.LegalBalls(), scoring.RequiredRunRate(state)))
	default:
		lines = append(lines, fmt.Sprintf("Run rate %.2f", scoring.CurrentRunRate(state)))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(lines, "\n"), false, false), nil, nil))

	var crease []string
	for _, b := range state.CurrentBatsmen {
		marker := ""
		if b.IsStriker {
			marker = "*"
		}
		crease = append(crease, fmt.Sprintf("%s%s %d (%d)", b.Name, marker, b.Runs, b.BallsFaced))
	}
	if b := state.CurrentBowler; b != nil {
		crease = append(crease, fmt.Sprintf("%s %d-%d (%s ov)", b.Name, b.Wickets, b.RunsConceded, formatOvers(b.BallsBowled)))
	}
	if len(crease) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(crease, " • "), true, false)))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}

// battingLines lists the top run scorers, highest first.
func battingLines(batsmen []scoring.Batsman) string {
	sorted := make([]scoring.Batsman, len(batsmen))
	copy(sorted, batsmen)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Runs > sorted[j].Runs
	})

	var lines []string
	for i, b := range sorted {
		if i == topPerformers {
			break
		}
		notOut := ""
		if !b.IsOut {
			notOut = "*"
		}
		lines = append(lines, fmt.Sprintf("• %s %d%s (%d)", b.Name, b.Runs, notOut, b.BallsFaced))
	}
	return strings.Join(lines, "\n")
}

// bowlingLines lists the best bowlers by wickets, then by fewest runs.
func bowlingLines(bowlers []scoring.Bowler) string {
	sorted := make([]scoring.Bowler, len(bowlers))
	copy(sorted, bowlers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wickets != sorted[j].Wickets {
			return sorted[i].Wickets > sorted[j].Wickets
		}
		return sorted[i].RunsConceded < sorted[j].RunsConceded
	})

	var lines []string
	for i, b := range sorted {
		if i == topPerformers {
			break
		}
		lines = append(lines, fmt.Sprintf("• %s %d-%d (%s ov)", b.Name, b.Wickets, b.RunsConceded, formatOvers(b.BallsBowled)))
	}
	return strings.Join(lines, "\n")
}

func formatOvers(balls int) string {
	return fmt.Sprintf("%d.%d", balls/6, balls%6)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
