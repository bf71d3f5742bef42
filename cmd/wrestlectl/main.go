package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"wrestling-coach/internal/api"
	"wrestling-coach/internal/catalog"
	"wrestling-coach/internal/config"
	"wrestling-coach/internal/database"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/logger"
	"wrestling-coach/internal/output"
	"wrestling-coach/internal/repository"
	"wrestling-coach/internal/rng"
	"wrestling-coach/internal/rosterfile"
	"wrestling-coach/internal/service"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

const (
	logLevelFlag = "log-level"
	seedFlag     = "seed"
	outputFlag   = "output"
	xlsxFlag     = "xlsx"
	dbFlag       = "db"
	programFlag  = "program"
	catalogFlag  = "catalog"
)

var build string
var semanticVersion = "v0.3.0" + build

func newLogger(cCtx *cli.Context) zerolog.Logger {
	return logger.SetLevel(logger.ParseLevel(cCtx.String(logLevelFlag)))
}

func newEngines(cCtx *cli.Context) *service.Engines {
	return service.NewEngines(rng.New(cCtx.Uint64(seedFlag)), newLogger(cCtx))
}

func loadCatalog(cCtx *cli.Context) (*catalog.Catalog, error) {
	if path := cCtx.String(catalogFlag); path != "" {
		return catalog.Open(path)
	}
	return catalog.Default()
}

func dualAction(cCtx *cli.Context) error {
	a, err := rosterfile.Open(cCtx.String("team-a"))
	if err != nil {
		return err
	}
	b, err := rosterfile.Open(cCtx.String("team-b"))
	if err != nil {
		return err
	}
	strategy := domain.Strategy(cCtx.String("strategy"))
	if !strategy.Valid() {
		return fmt.Errorf("%w: %q", service.ErrInvalidStrategy, strategy)
	}

	engines := newEngines(cCtx)
	result := engines.Duals.Simulate(a.Team("Team A"), b.Team("Team B"), service.WithStrategy(strategy))
	return rosterfile.Write(cCtx.String(outputFlag), &result)
}

func bracketAction(cCtx *cli.Context) error {
	pool, err := rosterfile.Open(cCtx.String("pool"))
	if err != nil {
		return err
	}
	engines := newEngines(cCtx)
	bracket := engines.Tournament.SimulateTournament(pool.Wrestlers)
	if bracket == nil {
		return fmt.Errorf("no weight class in %s has an entrant", cCtx.String("pool"))
	}
	if path := cCtx.String(xlsxFlag); path != "" {
		if err := output.ExportXLSX(path, nil, bracket); err != nil {
			return err
		}
	}
	return rosterfile.Write(cCtx.String(outputFlag), bracket)
}

func rosterAction(cCtx *cli.Context) error {
	cat, err := loadCatalog(cCtx)
	if err != nil {
		return err
	}
	name := cCtx.String(programFlag)
	program, ok := cat.Find(name)
	if !ok {
		program = domain.Program{Name: name, Prestige: domain.DefaultPrestige, Popularity: 5, Athletics: 5}
	}
	engines := newEngines(cCtx)
	file := rosterfile.File{Name: program.Name, Wrestlers: engines.Generator.Roster(program, cCtx.Int("per-class"))}
	return rosterfile.Write(cCtx.String(outputFlag), &file)
}

// withSeason opens the season store and runs fn against it.
func withSeason(cCtx *cli.Context, fn func(context.Context, *service.SeasonService) error) error {
	zl := newLogger(cCtx)
	cat, err := loadCatalog(cCtx)
	if err != nil {
		return err
	}
	sqlDB, err := database.Open(cCtx.String(dbFlag), zl)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	queries := db.New(sqlDB)
	cfg := &config.Config{
		ProgramName: cCtx.String(programFlag),
		DBPath:      cCtx.String(dbFlag),
		RNGSeed:     cCtx.Uint64(seedFlag),
		AllowBump:   cCtx.Bool("allow-bump"),
	}
	seasons := service.NewSeasonService(
		cfg,
		cat,
		service.NewEngines(rng.New(cfg.RNGSeed), zl),
		repository.NewLeagueRepository(sqlDB, queries, zl),
		repository.NewDualRepository(sqlDB, queries, zl),
		repository.NewRatingHistoryRepository(sqlDB, queries, zl),
		repository.NewSeasonRepository(queries, zl),
		api.NewGazetteClient(cfg),
		zl,
	)
	return fn(cCtx.Context, seasons)
}

func seasonCommand() *cli.Command {
	return &cli.Command{
		Name:  "season",
		Usage: "Run season operations against a stored season",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: dbFlag, Value: "wrestling.db", Usage: "Path to the season database", EnvVars: []string{"DB_PATH"}},
			&cli.StringFlag{Name: programFlag, Aliases: []string{"p"}, Usage: "The program you coach", EnvVars: []string{"PROGRAM_NAME"}, Required: true},
			&cli.BoolFlag{Name: "allow-bump", Value: true, Usage: "Let a wrestler fill the next heavier class", EnvVars: []string{"ALLOW_BUMP"}},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the season",
				Action: func(cCtx *cli.Context) error {
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						return rosterfile.Write(cCtx.String(outputFlag), s.Snapshot(ctx))
					})
				},
			},
			{
				Name:  "import",
				Usage: "Replace the roster with a YAML roster file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "roster", Aliases: []string{"r"}, Usage: "Roster YAML file", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					file, err := rosterfile.Open(cCtx.String("roster"))
					if err != nil {
						return err
					}
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						view, err := s.SetRoster(ctx, file.Wrestlers)
						if err != nil {
							return err
						}
						return rosterfile.Write(cCtx.String(outputFlag), view)
					})
				},
			},
			{
				Name:  "dual",
				Usage: "Simulate a dual against a conference opponent",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "opponent", Usage: "Opponent program name", Required: true},
				},
				Action: func(cCtx *cli.Context) error {
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						out, err := s.SimulateDual(ctx, cCtx.String("opponent"))
						if err != nil {
							return err
						}
						return rosterfile.Write(cCtx.String(outputFlag), out)
					})
				},
			},
			{
				Name:  "standings",
				Usage: "Print the league table",
				Action: func(cCtx *cli.Context) error {
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						view, err := s.Standings(ctx)
						if err != nil {
							return err
						}
						if path := cCtx.String(xlsxFlag); path != "" {
							if err := output.ExportXLSX(path, view.Teams, nil); err != nil {
								return err
							}
						}
						return rosterfile.Write(cCtx.String(outputFlag), view)
					})
				},
			},
			{
				Name:  "postseason",
				Usage: "Play the four team postseason",
				Action: func(cCtx *cli.Context) error {
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						result, err := s.RunPostseason(ctx)
						if err != nil {
							return err
						}
						return rosterfile.Write(cCtx.String(outputFlag), result)
					})
				},
			},
			{
				Name:  "reset",
				Usage: "Start a new season",
				Action: func(cCtx *cli.Context) error {
					return withSeason(cCtx, func(ctx context.Context, s *service.SeasonService) error {
						return rosterfile.Write(cCtx.String(outputFlag), s.ResetSeason(ctx))
					})
				},
			},
		},
	}
}

func main() {
	app := &cli.App{
		Name:    "wrestlectl",
		Usage:   "Simulate wrestling duals, brackets and seasons from YAML rosters",
		Version: semanticVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: logLevelFlag, Value: "warn", Usage: "zerolog level for diagnostics on stderr", EnvVars: []string{"LOG_LEVEL"}},
			&cli.Uint64Flag{Name: seedFlag, Usage: "Random seed, 0 picks one from the clock", EnvVars: []string{"RNG_SEED"}},
			&cli.StringFlag{Name: outputFlag, Aliases: []string{"o"}, Value: rosterfile.Stdout, Usage: "Where to write the YAML result. Can be a file path or \"-\" (for stdout)."},
			&cli.StringFlag{Name: xlsxFlag, Usage: "Also export an xlsx workbook to this path"},
			&cli.StringFlag{Name: catalogFlag, Usage: "Program catalog YAML, defaults to the built-in conference"},
		},
		Commands: []*cli.Command{
			{
				Name:  "dual",
				Usage: "Simulate a dual between two roster files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "team-a", Aliases: []string{"a"}, Usage: "Roster YAML for side A", Required: true},
					&cli.StringFlag{Name: "team-b", Aliases: []string{"b"}, Usage: "Roster YAML for side B", Required: true},
					&cli.StringFlag{Name: "strategy", Value: string(domain.StrategyBalanced), Usage: "Side A strategy: balanced, aggressive or conservative"},
				},
				Action: dualAction,
			},
			{
				Name:  "bracket",
				Usage: "Run an eight man bracket at every weight class in a pool file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pool", Usage: "Entrant pool YAML", Required: true},
				},
				Action: bracketAction,
			},
			{
				Name:  "roster",
				Usage: "Generate a roster YAML file for a program",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: programFlag, Aliases: []string{"p"}, Usage: "Program name", Required: true},
					&cli.IntFlag{Name: "per-class", Value: 2, Usage: "Wrestlers per weight class"},
				},
				Action: rosterAction,
			},
			seasonCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
