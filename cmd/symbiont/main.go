// Command symbiont solves small ecology selection puzzles: ecosystem
// boards where a chosen food web must share a habitat window and survive
// a feeding pass, and multi-site microbe assignment boards matched on
// attribute averages and traits.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/avandyck/symbiont/internal/api"
	"github.com/avandyck/symbiont/internal/persistence"
	"github.com/avandyck/symbiont/internal/report"
	"github.com/avandyck/symbiont/internal/scenario"
	"github.com/avandyck/symbiont/internal/solver"
)

type cli struct {
	Solve     solveCmd     `cmd:"" help:"Solve an ecosystem scenario."`
	Assign    assignCmd    `cmd:"" help:"Assign microbe groups to sites."`
	Scenarios scenariosCmd `cmd:"" help:"List the built-in scenarios."`
	Generate  generateCmd  `cmd:"" help:"Generate a random ecosystem scenario as YAML."`
	Runs      runsCmd      `cmd:"" help:"Show recently saved solver runs."`
	Serve     serveCmd     `cmd:"" help:"Serve the HTTP API."`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ktx := kong.Parse(&cli{},
		kong.Name("symbiont"),
		kong.Description("Solver for ecology selection puzzles."),
		kong.UsageOnError(),
	)
	ktx.FatalIfErrorf(ktx.Run())
}

// loadScenario resolves --file over the built-in registry.
func loadScenario(name, file string) (scenario.Scenario, error) {
	if file != "" {
		return scenario.Load(file)
	}
	return scenario.Lookup(name)
}

type solveCmd struct {
	Scenario     string `arg:"" optional:"" default:"reef" help:"Built-in scenario name."`
	File         string `short:"f" help:"Load the scenario from a YAML file instead."`
	Pick         int    `help:"Selection size (default: the scenario's)."`
	MaxSolutions int    `default:"5" help:"Stop after this many accepted solutions."`
	Save         bool   `help:"Persist the run to the database."`
	DB           string `env:"SYMBIONT_DB" default:"data/symbiont.db" help:"Run database path."`
}

func (c *solveCmd) Run() error {
	scn, err := loadScenario(c.Scenario, c.File)
	if err != nil {
		return err
	}
	if scn.Variant != scenario.VariantEcosystem {
		return fmt.Errorf("scenario %q is a %s puzzle; use the assign command", scn.Name, scn.Variant)
	}

	pick := c.Pick
	if pick <= 0 {
		pick = scn.Pick
	}

	res, err := solver.SolveEcosystem(scn.Pool, solver.Options{
		Pick:         pick,
		MaxSolutions: c.MaxSolutions,
	})
	if err != nil {
		return err
	}

	fmt.Print(report.Ecosystem(scn, res))

	if c.Save {
		db, err := openDB(c.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		run := persistence.NewRun(scn.Name, string(scn.Variant))
		run.Pick = pick
		run.MaxSolutions = c.MaxSolutions
		run.Enumerated = res.Stats.Enumerated
		run.CheckerPassed = res.Stats.CheckerPass
		run.Simulated = res.Stats.Simulated
		run.Accepted = res.Stats.Accepted
		run.Solutions = res.Solutions
		return db.SaveRun(run)
	}
	return nil
}

type assignCmd struct {
	Scenario     string `arg:"" optional:"" default:"seawolf" help:"Built-in scenario name."`
	File         string `short:"f" help:"Load the scenario from a YAML file instead."`
	AllowReuse   bool   `help:"Solve each site independently, allowing microbe reuse."`
	Pick         int    `help:"Group size per site (default: the scenario's)."`
	MaxSolutions int    `default:"5" help:"Stop after this many accepted assignments."`
	Save         bool   `help:"Persist the run to the database."`
	DB           string `env:"SYMBIONT_DB" default:"data/symbiont.db" help:"Run database path."`
}

func (c *assignCmd) Run() error {
	scn, err := loadScenario(c.Scenario, c.File)
	if err != nil {
		return err
	}
	if scn.Variant != scenario.VariantAssignment {
		return fmt.Errorf("scenario %q is a %s puzzle; use the solve command", scn.Name, scn.Variant)
	}

	pick := c.Pick
	if pick <= 0 {
		pick = scn.Pick
	}

	res, err := solver.AssignSites(scn.Pool, scn.Sites, solver.AssignOptions{
		Pick:         pick,
		MaxSolutions: c.MaxSolutions,
		AllowReuse:   c.AllowReuse,
	})
	if err != nil {
		return err
	}

	fmt.Print(report.Assignment(scn, res))

	if c.Save {
		db, err := openDB(c.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		run := persistence.NewRun(scn.Name, string(scn.Variant))
		run.Pick = pick
		run.MaxSolutions = c.MaxSolutions
		run.AllowReuse = c.AllowReuse
		run.Enumerated = res.Stats.Enumerated
		run.CheckerPassed = res.Stats.CheckerPass
		run.Accepted = res.Stats.Accepted
		run.Assignments = res.Assignments
		return db.SaveRun(run)
	}
	return nil
}

type scenariosCmd struct{}

func (c *scenariosCmd) Run() error {
	for _, scn := range scenario.Builtin() {
		fmt.Printf("%-10s %-10s pick %d from %d", scn.Name, scn.Variant, scn.Pick, len(scn.Pool))
		if len(scn.Sites) > 0 {
			fmt.Printf(" across %d sites", len(scn.Sites))
		}
		fmt.Printf("  %s\n", scn.Title)
	}
	return nil
}

type generateCmd struct {
	Seed    int64  `help:"Generation seed (0 = random)."`
	Species int    `default:"12" help:"Pool size."`
	Pick    int    `default:"6" help:"Selection size."`
	Out     string `short:"o" default:"scenario.yaml" help:"Output YAML path."`
}

func (c *generateCmd) Run() error {
	cfg := scenario.DefaultGenConfig()
	cfg.Seed = c.Seed
	cfg.Species = c.Species
	cfg.Pick = c.Pick

	scn, err := scenario.Generate(cfg)
	if err != nil {
		return err
	}
	if err := scenario.Save(scn, c.Out); err != nil {
		return err
	}

	slog.Info("scenario written", "path", c.Out, "name", scn.Name, "species", len(scn.Pool))
	return nil
}

type runsCmd struct {
	Limit int    `default:"10" help:"How many runs to show."`
	DB    string `env:"SYMBIONT_DB" default:"data/symbiont.db" help:"Run database path."`
}

func (c *runsCmd) Run() error {
	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(c.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-10s %-10s pick=%d accepted=%d/%d examined=%d  %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.Scenario, run.Variant,
			run.Pick, run.Accepted, run.MaxSolutions, run.Enumerated, run.ID)
	}
	return nil
}

type serveCmd struct {
	Port     int    `default:"8080" help:"Listen port."`
	AdminKey string `env:"SYMBIONT_ADMIN_KEY" help:"Bearer token for solve POSTs (empty = open)."`
	DB       string `env:"SYMBIONT_DB" default:"data/symbiont.db" help:"Run database path."`
}

func (c *serveCmd) Run() error {
	db, err := openDB(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := &api.Server{
		DB:       db,
		Port:     c.Port,
		AdminKey: c.AdminKey,
	}
	srv.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
	return nil
}

func openDB(path string) (*persistence.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	return persistence.Open(path)
}
