package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/germarr/fifaworldcup2026/brackets"
	"github.com/germarr/fifaworldcup2026/config"
	"github.com/germarr/fifaworldcup2026/db"
	"github.com/germarr/fifaworldcup2026/models"
	"github.com/germarr/fifaworldcup2026/repositories"
	"github.com/germarr/fifaworldcup2026/services"
	"github.com/germarr/fifaworldcup2026/storage"
	"github.com/urfave/cli/v2"
)

// app bundles everything a subcommand needs after wiring.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	userRepo       repositories.UserRepository

	bracketSvc    services.BracketService
	standingsSvc  services.StandingsService
	scoringSvc    services.ScoringService
	simulationSvc services.SimulationService
	matchSvc      services.MatchService
	predictionSvc services.PredictionService

	close func()
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cliApp := &cli.App{
		Name:  "fifaworldcup2026",
		Usage: "World Cup 2026 bracket prediction engine",
		Commands: []*cli.Command{
			newStandingsCommand(logger),
			newThirdsCommand(logger),
			newBracketCommand(logger),
			newLeaderboardCommand(logger),
			newScoreCommand(logger),
			newPredictCommand(logger),
			newResultCommand(logger),
			newPinFixturesCommand(logger),
			newSimulateCommand(logger),
			newSyncFlagsCommand(logger),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// setup loads configuration, connects to Postgres and wires the service
// graph. Every subcommand shares this path.
func setup(logger *slog.Logger) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("database connection established")

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	standingRepo := repositories.NewPostgresGroupStandingRepository(dbConn)
	tiebreakRepo := repositories.NewPostgresTiebreakOverrideRepository(dbConn)

	format := brackets.WorldCup2026()
	policy := brackets.PartialCredit
	if cfg.KnockoutCreditPolicy == "strict" {
		policy = brackets.StrictMatchup
	}

	bracketSvc := services.NewBracketService(format, teamRepo, matchRepo, predictionRepo, tiebreakRepo)
	standingsSvc := services.NewStandingsService(bracketSvc, standingRepo, logger)
	scoringSvc := services.NewScoringService(bracketSvc, userRepo, policy)
	simulationSvc := services.NewSimulationService(
		bracketSvc, matchRepo, predictionRepo, uint64(time.Now().UnixNano()), logger)
	matchSvc := services.NewMatchService(bracketSvc, matchRepo, logger)
	predictionSvc := services.NewPredictionService(predictionRepo, matchRepo)

	return &app{
		cfg:            cfg,
		logger:         logger,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		bracketSvc:     bracketSvc,
		standingsSvc:   standingsSvc,
		scoringSvc:     scoringSvc,
		simulationSvc:  simulationSvc,
		matchSvc:       matchSvc,
		predictionSvc:  predictionSvc,
		close: func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		},
	}, nil
}

func newStandingsCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print group standings (official, or a user's predicted view)",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "user", Usage: "user id for a predicted view; 0 means official"},
			&cli.BoolFlag{Name: "persist", Usage: "recompute and persist official standings first"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			if c.Bool("persist") {
				if err := a.standingsSvc.RecomputeOfficial(c.Context); err != nil {
					return err
				}
			}

			userID := c.Int("user")
			var standings map[string][]*brackets.TeamStanding
			if userID == 0 {
				standings, err = a.standingsSvc.OfficialStandings(c.Context)
			} else {
				standings, err = a.standingsSvc.UserStandings(c.Context, userID)
			}
			if err != nil {
				return err
			}

			groups := make([]string, 0, len(standings))
			for g := range standings {
				groups = append(groups, g)
			}
			sort.Strings(groups)

			for _, g := range groups {
				fmt.Printf("Group %s\n", g)
				fmt.Printf("  %-24s %2s %2s %2s %2s %3s %3s %4s %3s\n",
					"Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
				for _, row := range standings[g] {
					fmt.Printf("  %-24s %2d %2d %2d %2d %3d %3d %+4d %3d\n",
						row.Team.Name, row.Played, row.Won, row.Drawn, row.Lost,
						row.GoalsFor, row.GoalsAgainst, row.GoalDifference(), row.Points)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newThirdsCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "thirds",
		Usage: "print the ranked third-place table",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "user", Usage: "user id for a predicted view; 0 means official"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			candidates, err := a.standingsSvc.ThirdPlaceTable(c.Context, c.Int("user"))
			if err != nil {
				return err
			}

			fmt.Printf("%-4s %-24s %-5s %3s %4s %3s  %s\n", "Rank", "Team", "Group", "Pts", "GD", "GF", "Qualifies")
			for _, cand := range candidates {
				mark := ""
				if cand.Qualifies {
					mark = "yes"
				}
				fmt.Printf("%-4d %-24s %-5s %3d %+4d %3d  %s\n",
					cand.Rank, cand.Standing.Team.Name, cand.Group,
					cand.Standing.Points, cand.Standing.GoalDifference(),
					cand.Standing.GoalsFor, mark)
			}
			return nil
		},
	}
}

func newBracketCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "bracket",
		Usage: "print the resolved knockout bracket",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "user", Usage: "user id for a predicted view; 0 means official"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			userID := c.Int("user")
			var res brackets.Resolution
			if userID == 0 {
				res, err = a.bracketSvc.OfficialBracket(c.Context)
			} else {
				res, err = a.bracketSvc.UserBracket(c.Context, userID)
			}
			if err != nil {
				return err
			}

			snap, err := a.bracketSvc.LoadSnapshot(c.Context)
			if err != nil {
				return err
			}

			printBracket(snap, res)

			champion, actual, err := a.bracketSvc.Champion(c.Context, userID)
			if err != nil {
				return err
			}
			switch {
			case champion == nil:
				fmt.Println("\nChampion: undetermined")
			case actual:
				fmt.Printf("\nChampion: %s\n", champion.Name)
			default:
				fmt.Printf("\nChampion (predicted): %s\n", champion.Name)
			}
			return nil
		},
	}
}

func printBracket(snap *brackets.Snapshot, res brackets.Resolution) {
	round := models.Round("")
	for _, m := range snap.KnockoutMatches() {
		if m.Round != round {
			round = m.Round
			fmt.Printf("%s\n", round)
		}
		team1, team2, err := brackets.ResolvedTeams(m, res, snap)
		fmt.Printf("  M%-3d %s vs %s", m.MatchNumber, teamLabel(team1, m.Slot1), teamLabel(team2, m.Slot2))
		if err != nil {
			fmt.Printf("  (%v)", err)
		}
		fmt.Println()
	}
}

func teamLabel(team *models.Team, slot models.TeamSlot) string {
	if team != nil {
		return team.Name
	}
	if slot.IsPlaceholder() {
		return slot.Code
	}
	return "TBD"
}

func newLeaderboardCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "print all users ranked by total points",
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.scoringSvc.Leaderboard(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("%-4s %-24s %s\n", "Rank", "User", "Points")
			for _, e := range entries {
				fmt.Printf("%-4d %-24s %d\n", e.Rank, e.Username, e.Points)
			}
			return nil
		},
	}
}

func newScoreCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "print one user's total",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "user", Required: true, Usage: "user id"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			total, err := a.scoringSvc.UserScore(c.Context, c.Int("user"))
			if err != nil {
				return err
			}
			fmt.Printf("%d\n", total)
			return nil
		},
	}
}

func newPredictCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "save or clear a user's pick for a match",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "user", Required: true, Usage: "user id"},
			&cli.IntFlag{Name: "match", Required: true, Usage: "match id"},
			&cli.IntFlag{Name: "score1", Usage: "predicted side 1 goals"},
			&cli.IntFlag{Name: "score2", Usage: "predicted side 2 goals"},
			&cli.IntFlag{Name: "winner", Usage: "predicted winner team id for a drawn knockout pick"},
			&cli.IntFlag{Name: "penalty-winner", Usage: "predicted shootout winner team id"},
			&cli.BoolFlag{Name: "clear", Usage: "delete the pick instead of saving one"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			if c.Bool("clear") {
				return a.predictionSvc.Clear(c.Context, c.Int("user"), c.Int("match"))
			}

			p := &models.Prediction{
				UserID:  c.Int("user"),
				MatchID: c.Int("match"),
				Score1:  c.Int("score1"),
				Score2:  c.Int("score2"),
			}
			if c.IsSet("winner") {
				id := c.Int("winner")
				p.WinnerID = &id
			}
			if c.IsSet("penalty-winner") {
				id := c.Int("penalty-winner")
				p.PenaltyWinnerID = &id
			}
			return a.predictionSvc.Save(c.Context, p)
		},
	}
}

func newResultCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "result",
		Usage: "record a final score for a match",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "match", Required: true, Usage: "match id"},
			&cli.IntFlag{Name: "score1", Required: true, Usage: "side 1 goals"},
			&cli.IntFlag{Name: "score2", Required: true, Usage: "side 2 goals"},
			&cli.IntFlag{Name: "penalty-winner", Usage: "shootout winner team id for a drawn knockout score"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			var penaltyWinnerID *int
			if c.IsSet("penalty-winner") {
				id := c.Int("penalty-winner")
				penaltyWinnerID = &id
			}
			return a.matchSvc.RecordResult(c.Context, c.Int("match"), c.Int("score1"), c.Int("score2"), penaltyWinnerID)
		},
	}
}

func newPinFixturesCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "pin-fixtures",
		Usage: "pin resolved knockout fixtures to their real teams",
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.matchSvc.PinFixtures(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("fixtures pinned: %d\n", n)
			return nil
		},
	}
}

func newSimulateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "fill unfinished matches with random results",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "groups", Usage: "simulate the group stage"},
			&cli.BoolFlag{Name: "knockout", Usage: "assign fixtures and simulate knockout rounds"},
			&cli.IntFlag{Name: "predictions-for", Usage: "write a random full prediction set for this user id"},
		},
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()
			return runSimulation(c.Context, a, c.Bool("groups"), c.Bool("knockout"), c.Int("predictions-for"))
		},
	}
}

func runSimulation(ctx context.Context, a *app, groups, knockout bool, predictionsFor int) error {
	if !groups && !knockout && predictionsFor == 0 {
		return fmt.Errorf("nothing to simulate: pass --groups, --knockout or --predictions-for")
	}
	if groups {
		n, err := a.simulationSvc.SimulateGroupStage(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("group matches simulated: %d\n", n)
	}
	if knockout {
		n, err := a.simulationSvc.SimulateKnockoutStage(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("knockout matches simulated: %d\n", n)
	}
	if predictionsFor != 0 {
		n, err := a.simulationSvc.SimulateUserPredictions(ctx, predictionsFor)
		if err != nil {
			return err
		}
		fmt.Printf("predictions written for user %d: %d\n", predictionsFor, n)
	}
	return nil
}

func newSyncFlagsCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "sync-flags",
		Usage: "mirror team flag images to object storage and record public URLs",
		Action: func(c *cli.Context) error {
			a, err := setup(logger)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.R2AccountID == "" || a.cfg.R2AccessKeyID == "" ||
				a.cfg.R2SecretAccessKey == "" || a.cfg.R2BucketName == "" {
				return fmt.Errorf("sync-flags requires R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME")
			}

			uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
				AccountID:       a.cfg.R2AccountID,
				AccessKeyID:     a.cfg.R2AccessKeyID,
				SecretAccessKey: a.cfg.R2SecretAccessKey,
				BucketName:      a.cfg.R2BucketName,
				PublicBaseURL:   a.cfg.R2PublicBaseURL,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
			}
			logger.Info("Cloudflare R2 uploader initialized")

			flagSvc := services.NewFlagService(a.teamRepo, uploader, nil, logger)
			n, err := flagSvc.SyncAll(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("flags synced: %d\n", n)
			return nil
		},
	}
}
