package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"showdown-sim/ai"
	"showdown-sim/battle"
	"showdown-sim/client"
	"showdown-sim/config"
	"showdown-sim/data"
	"showdown-sim/game"
	"showdown-sim/parser"
	"showdown-sim/random"
	"showdown-sim/server"
	"showdown-sim/store"
)

const usage = `usage: showdown-sim [-config file] <command> [flags]

commands:
  serve    run the websocket decision service
  duel     play AI against AI and record the results
  decide   ask a running service for one move
`

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "serve":
		err = serve(ctx, cfg, logger)
	case "duel":
		err = duel(ctx, cfg, logger, args)
	case "decide":
		err = decide(ctx, cfg, logger, args, os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error(cmd+" failed", "err", err)
		os.Exit(1)
	}
}

func loadDex(cfg config.Config, logger *slog.Logger) (*data.Pokedex, error) {
	dex, err := data.Load(cfg.Data.Pokedex, cfg.Data.Moves, logger)
	if err != nil {
		return nil, fmt.Errorf("load pokedex: %w", err)
	}
	return dex, nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	dex, err := loadDex(cfg, logger)
	if err != nil {
		return err
	}
	species, moves := dex.Len()
	logger.Info("pokedex loaded", "species", species, "moves", moves)

	srv := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     server.New(dex, cfg.AI, logger).Handler(),
		ReadTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func readTeam(path string, dex parser.Dex) ([]*game.PokemonSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	team, err := parser.ParseTeam(string(raw), dex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return team, nil
}

func teamLabel(team []*game.PokemonSpec) string {
	names := make([]string, len(team))
	for i, p := range team {
		names[i] = p.Species.Name
	}
	return strings.Join(names, "/")
}

func newAI(kind string, cfg config.AIConfig) (ai.AI, *ai.MonteCarlo, error) {
	switch kind {
	case "random":
		return ai.RandomAI{}, nil, nil
	case "montecarlo", "mc":
		mc := &ai.MonteCarlo{
			Playouts:    cfg.Playouts,
			Workers:     cfg.Workers,
			ChanceFloor: cfg.ChanceFloor,
			MaxTurns:    cfg.MaxTurns,
		}
		return mc, mc, nil
	}
	return nil, nil, fmt.Errorf("unknown ai %q (want random or montecarlo)", kind)
}

// pickLead uses the lead matrix for a Monte Carlo side and a uniform pick
// otherwise.
func pickLead(ctx context.Context, env *battle.Env, mc *ai.MonteCarlo, chanceFloor float64, black, white []*game.PokemonSpec, p game.Player) (int, error) {
	own := black
	if p == game.White {
		own = white
	}
	if mc == nil || len(own) == 1 {
		return ai.RandomLead(env, own)
	}
	s, err := mc.ChooseLead(ctx, env, black, white, p)
	if err != nil {
		return 0, err
	}
	return s.PickOne(env.RNG, chanceFloor)
}

func duel(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("duel", flag.ExitOnError)
	blackPath := fs.String("black", "", "black team export")
	whitePath := fs.String("white", "", "white team export")
	blackAI := fs.String("black-ai", "montecarlo", "black AI: random or montecarlo")
	whiteAI := fs.String("white-ai", "random", "white AI: random or montecarlo")
	games := fs.Int("games", 10, "number of matches")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "first match seed")
	verbose := fs.Bool("v", false, "print the final position of every match")
	fs.Parse(args)
	if *blackPath == "" || *whitePath == "" {
		return errors.New("duel needs -black and -white")
	}

	dex, err := loadDex(cfg, logger)
	if err != nil {
		return err
	}
	black, err := readTeam(*blackPath, dex)
	if err != nil {
		return err
	}
	white, err := readTeam(*whitePath, dex)
	if err != nil {
		return err
	}
	blackPlayer, blackMC, err := newAI(*blackAI, cfg.AI)
	if err != nil {
		return err
	}
	whitePlayer, whiteMC, err := newAI(*whiteAI, cfg.AI)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	policy := cfg.AI.RandomPolicy()
	for g := range *games {
		matchSeed := *seed + uint64(g)
		env := battle.NewEnv(random.New(policy, matchSeed), logger)

		bl, err := pickLead(ctx, env, blackMC, cfg.AI.ChanceFloor, black, white, game.Black)
		if err != nil {
			return err
		}
		wl, err := pickLead(ctx, env, whiteMC, cfg.AI.ChanceFloor, black, white, game.White)
		if err != nil {
			return err
		}

		out, err := ai.RunToCompletion(ctx, env, battle.New(black[bl], white[wl]), blackPlayer, whitePlayer, cfg.AI.MaxTurns)
		if err != nil {
			return fmt.Errorf("match %d: %w", g, err)
		}
		winner := store.Draw
		if !out.Draw {
			winner = out.Winner.String()
		}
		id, err := db.RecordMatch(ctx, store.Match{
			BlackAI:   *blackAI,
			WhiteAI:   *whiteAI,
			BlackTeam: teamLabel(black),
			WhiteTeam: teamLabel(white),
			Winner:    winner,
			Turns:     out.Turns,
			Seed:      matchSeed,
		})
		if err != nil {
			return err
		}
		logger.Info("match finished", "id", id, "winner", winner, "turns", out.Turns, "seed", matchSeed)
		if *verbose {
			fmt.Print(parser.RenderBattle(out.Battle))
		}
	}

	standings, err := db.Summary(ctx)
	if err != nil {
		return err
	}
	for _, st := range standings {
		fmt.Printf("%-12s W %-4d L %-4d D %d\n", st.AI, st.Wins, st.Losses, st.Draws)
	}
	return nil
}

// decide prints the service's choice for one position to out, followed by
// its strategy and outcome table.
func decide(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decide", flag.ExitOnError)
	addr := fs.String("server", "http://localhost"+cfg.Server.Address, "decision service url")
	blackPath := fs.String("black", "", "black team export")
	whitePath := fs.String("white", "", "white team export")
	player := fs.String("player", "black", "side to decide for")
	playouts := fs.Int("playouts", 0, "override ai.playouts")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "search seed")
	fs.Parse(args)
	if *blackPath == "" || *whitePath == "" {
		return errors.New("decide needs -black and -white")
	}

	blackText, err := os.ReadFile(*blackPath)
	if err != nil {
		return err
	}
	whiteText, err := os.ReadFile(*whitePath)
	if err != nil {
		return err
	}

	if cfg.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AI.Timeout+10*time.Second)
		defer cancel()
	}
	c, err := client.Dial(ctx, *addr, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	resp, err := c.Decide(ctx, server.DecideRequest{
		Black:    string(blackText),
		White:    string(whiteText),
		Player:   *player,
		Playouts: *playouts,
		Seed:     *seed,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, resp.Choice)
	entries := make([]ai.Weighted[string], 0, len(resp.Strategy))
	for _, e := range resp.Strategy {
		entries = append(entries, ai.Weighted[string]{Value: e.Choice, Weight: e.Probability})
	}
	fmt.Fprint(out, parser.RenderStrategy(ai.NewMixedStrategy(logger, entries...)))
	if resp.Matrix != nil {
		fmt.Fprint(out, parser.RenderMatrix(resp.Matrix.Rows, resp.Matrix.Cols, resp.Matrix.Values))
	}
	return nil
}
