package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mauv0809/wicketkeeper/internal/scoring"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(scorecardCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(openersCmd)
	rootCmd.AddCommand(ballCmd)
	rootCmd.AddCommand(bowlerCmd)
	rootCmd.AddCommand(batsmanCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(simpleEventCmd("next-innings", "Start the second innings", "/match/next-innings"))
	rootCmd.AddCommand(simpleEventCmd("retire", "Retire the striker", "/match/retire"))
	rootCmd.AddCommand(simpleEventCmd("swap", "Swap the striker and non-striker", "/match/swap"))
	rootCmd.AddCommand(simpleEventCmd("undo", "Undo the last event", "/match/undo"))
	rootCmd.AddCommand(simpleEventCmd("restart", "Discard the match and start over", "/match/restart"))

	startCmd.Flags().Int("overs", 20, "Overs per innings")
	startCmd.Flags().String("batting-first", string(scoring.SideTeamA), "TeamA or TeamB")
	startCmd.Flags().Bool("live", false, "Publish the match to the live feed")

	ballCmd.Flags().String("extra", string(scoring.ExtraNone), "None, Wide, NoBall, Bye or LegBye")
	ballCmd.Flags().String("wicket", string(scoring.WicketNone), "None, Bowled, Caught, LBW, RunOut, Stumped or HitWicket")
	ballCmd.Flags().String("fielder", "", "Fielder involved in the dismissal")

	bowlerCmd.Flags().String("id", "", "Bring back an existing bowler by id")

	renameCmd.AddCommand(renameBatsmanCmd)
	renameCmd.AddCommand(renameBowlerCmd)

	archiveCmd.Flags().Int("limit", 0, "Maximum number of matches to list")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the current match state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/state")
	},
}

var scorecardCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Show the scorecard of the current match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/scorecard")
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive [slug]",
	Short: "List completed matches, or show one by slug",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/archive/" + args[0])
		}
		endpoint := "/archive"
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			endpoint += "?limit=" + strconv.Itoa(limit)
		}
		return performGetRequest(endpoint)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show all-time tallies",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var startCmd = &cobra.Command{
	Use:   "start <team a> <team b>",
	Short: "Start a new match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		overs, _ := cmd.Flags().GetInt("overs")
		battingFirst, _ := cmd.Flags().GetString("batting-first")
		live, _ := cmd.Flags().GetBool("live")
		return performPostRequest("/match/start", scoring.StartMatch{
			TeamA:        args[0],
			TeamB:        args[1],
			TotalOvers:   overs,
			BattingFirst: scoring.Side(battingFirst),
			Live:         live,
		})
	},
}

var openersCmd = &cobra.Command{
	Use:   "openers <striker> <non-striker> <bowler>",
	Short: "Set the opening batsmen and bowler of the innings",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/openers", scoring.SetOpeningPlayers{Striker: args[0], NonStriker: args[1], Bowler: args[2]})
	},
}

var ballCmd = &cobra.Command{
	Use:   "ball <runs>",
	Short: "Record a delivery",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("runs must be a number: %w", err)
		}
		extra, _ := cmd.Flags().GetString("extra")
		wicket, _ := cmd.Flags().GetString("wicket")
		fielder, _ := cmd.Flags().GetString("fielder")
		return performPostRequest("/match/ball", scoring.BowlBall{
			Runs:        runs,
			ExtraType:   scoring.ExtraType(extra),
			WicketType:  scoring.WicketType(wicket),
			FielderName: fielder,
		})
	},
}

var bowlerCmd = &cobra.Command{
	Use:   "bowler <name>",
	Short: "Choose the bowler for the next over",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		return performPostRequest("/match/bowler", scoring.SelectNextBowler{Name: args[0], IsNew: id == "", ExistingID: id})
	},
}

var batsmanCmd = &cobra.Command{
	Use:   "batsman <name>",
	Short: "Send in the next batsman",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/batsman", scoring.SelectNextBatsman{Name: strings.Join(args, " ")})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Correct a player's name",
}

var renameBatsmanCmd = &cobra.Command{
	Use:   "batsman <id> <name>",
	Short: "Rename a batsman by id",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/batsman/name", scoring.UpdateBatsmanName{ID: args[0], Name: strings.Join(args[1:], " ")})
	},
}

var renameBowlerCmd = &cobra.Command{
	Use:   "bowler <name>",
	Short: "Rename the current bowler",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/match/bowler/name", scoring.UpdateBowlerName{Name: strings.Join(args, " ")})
	},
}

// simpleEventCmd builds a command for an event that carries no fields.
func simpleEventCmd(use, short, endpoint string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return performPostRequest(endpoint, nil)
		},
	}
}

func withParams(endpoint string) string {
	if dryRun {
		if strings.Contains(endpoint, "?") {
			return endpoint + "&dry_run=true"
		}
		return endpoint + "?dry_run=true"
	}
	return endpoint
}

func performGetRequest(endpoint string) error {
	url := host + withParams(endpoint)
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + withParams(endpoint)
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader = http.NoBody
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	resp, err := http.Post(url, "application/json", body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
	} else {
		fmt.Println(string(body))
	}

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("the match is not in a state that accepts this event")
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
