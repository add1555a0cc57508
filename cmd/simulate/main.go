// Command simulate plays Quoridor games between computer policies.
//
// The default action plays a local batch and prints the standings:
//
//	simulate --one random --two wall_first_max --games 50
//
// The remote command drives the human seats of a session on a running server
// with a local policy:
//
//	simulate remote --url http://localhost:8080 --policy wall_first_minmax --opponent move_only
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/quoridor/game/config"
	"github.com/wricardo/mcp-training/quoridor/game/engine"
	"github.com/wricardo/mcp-training/quoridor/game/results"
	"github.com/wricardo/mcp-training/quoridor/game/service"
	"github.com/wricardo/mcp-training/quoridor/game/session"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("simulate failed")
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "play Quoridor games between computer policies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{Name: "board", Value: config.DefaultConfigID, Usage: "board configuration"},
			&cli.StringFlag{Name: "one", Value: "move_only", Usage: "policy for player one"},
			&cli.StringFlag{Name: "two", Value: "move_only", Usage: "policy for player two"},
			&cli.IntFlag{Name: "games", Value: 10, Usage: fmt.Sprintf("number of games (1-%d)", engine.MaxSimulationGames)},
			&cli.IntFlag{Name: "seed", Usage: "base seed (0 uses the clock)"},
			&cli.StringFlag{
				Name:    "redis",
				Usage:   "record results in this redis instance instead of memory",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print every game"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, closeStore, err := openStore(ctx, cmd.String("redis"))
			if err != nil {
				return err
			}
			defer closeStore()

			return runLocal(ctx, out, localOptions{
				ConfigDir: cmd.String("config-dir"),
				Request: service.SimulationRequest{
					ConfigID:  cmd.String("board"),
					PlayerOne: cmd.String("one"),
					PlayerTwo: cmd.String("two"),
					Games:     int(cmd.Int("games")),
					Seed:      int64(cmd.Int("seed")),
				},
				Store:   store,
				Verbose: cmd.Bool("verbose"),
			})
		},
		Commands: []*cli.Command{
			{
				Name:  "remote",
				Usage: "play the human seats of a server session with a local policy",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "game server URL"},
					&cli.StringFlag{Name: "session", Usage: "existing session ID (a new session is created when empty)"},
					&cli.StringFlag{Name: "board", Usage: "board configuration for a new session"},
					&cli.StringFlag{Name: "opponent", Value: "move_only", Usage: "server-side policy for player two of a new session"},
					&cli.StringFlag{Name: "policy", Value: "move_only", Usage: "local policy for the human seats"},
					&cli.IntFlag{Name: "seed", Usage: "seed for the local policy (0 uses the clock)"},
					&cli.IntFlag{Name: "max-actions", Value: 1000, Usage: "give up after this many local actions"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runRemote(ctx, out, remoteOptions{
						URL:        cmd.String("url"),
						SessionID:  cmd.String("session"),
						Board:      cmd.String("board"),
						Opponent:   cmd.String("opponent"),
						Policy:     cmd.String("policy"),
						Seed:       int64(cmd.Int("seed")),
						MaxActions: int(cmd.Int("max-actions")),
					})
				},
			},
		},
	}
}

// openStore connects to redis when addr is set
func openStore(ctx context.Context, addr string) (results.Store, func(), error) {
	if addr == "" {
		return results.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return results.NewRedisStore(client, os.Getenv("REDIS_PREFIX")), func() { client.Close() }, nil
}

type localOptions struct {
	ConfigDir string
	Request   service.SimulationRequest
	Store     results.Store
	Verbose   bool
}

// runLocal plays a batch through the game service and prints the outcome
func runLocal(ctx context.Context, out io.Writer, opts localOptions) error {
	configs, err := config.NewManager(opts.ConfigDir)
	if err != nil {
		return err
	}
	svc := service.NewGameService(session.NewManager(), configs, opts.Store)

	result, err := svc.Simulate(ctx, opts.Request)
	if err != nil {
		return err
	}

	if opts.Verbose {
		for _, game := range result.Results {
			if game.Error != "" {
				fmt.Fprintf(out, "game %d: failed: %s\n", game.Game, game.Error)
				continue
			}
			fmt.Fprintf(out, "game %d: %s (%s) won in %d turns\n",
				game.Game, game.Winner, result.Players[game.Winner], game.Turns)
		}
	}

	fmt.Fprintf(out, "%s: %s (x) vs %s (o), %d games\n", result.ConfigID, result.Players[0], result.Players[1], result.Games)
	fmt.Fprintf(out, "wins: %d-%d, failed: %d, average turns: %.1f\n",
		result.Wins[0], result.Wins[1], result.Failed, result.AverageTurns)

	board, err := svc.Leaderboard(ctx, 0)
	if err != nil {
		return err
	}
	for i, s := range board.Standings {
		fmt.Fprintf(out, "%d. %-18s %3d/%-3d %5.1f%%\n", i+1, s.Controller, s.Wins, s.Games, s.WinRate*100)
	}
	return nil
}
