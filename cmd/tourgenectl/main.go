package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"tourgene/internal/cityfile"
	"tourgene/internal/stats"
	"tourgene/internal/storage"
	"tourgene/pkg/tourgene"
)

const exportsDir = "exports"

const usageText = `Usage: tourgenectl <command> [flags]

Commands:
  solve    evolve a tour for a city set
  brute    exhaustively solve a small city set
  history  print a run's best-distance history
  runs     list known runs
  export   write a run bundle as JSON
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "solve":
		return runSolve(ctx, args[1:])
	case "brute":
		return runBrute(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\n\n%s", msg, usageText)
}

type storeFlags struct {
	kind    *string
	dbPath  *string
	runsDir *string
	verbose *bool
}

func registerStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		kind:    fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite"),
		dbPath:  fs.String("db-path", "tourgene.db", "sqlite database path"),
		runsDir: fs.String("runs-dir", "runs", "run artifacts directory"),
		verbose: fs.Bool("verbose", false, "verbose logging"),
	}
}

func newClient(ctx context.Context, flags storeFlags) (*tourgene.Client, error) {
	logger, err := buildLogger(*flags.verbose)
	if err != nil {
		return nil, err
	}
	return tourgene.NewClient(ctx, tourgene.Options{
		StoreKind: *flags.kind,
		DBPath:    *flags.dbPath,
		RunsDir:   *flags.runsDir,
		Logger:    logger,
	})
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runSolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	citiesPath := fs.String("cities", "", "city list JSON file")
	configPath := fs.String("config", "", "JSON run config file")
	runID := fs.String("run-id", "", "run identifier (generated when empty)")
	population := fs.Int("population", 40, "population size, divisible by 4")
	generations := fs.Int("generations", 1000, "generations to evolve")
	mutation := fs.Int("mutation", 10000, "mutation rate, 1-in-N per tour")
	selection := fs.String("selection", "", "selection strategy: most_fit|roulette")
	seed := fs.Int64("seed", -1, "random seed (-1 derives one from the clock)")
	table := fs.Bool("table", false, "print the final population statistics table")
	curve := fs.Int("curve", 0, "print the learning curve at this resolution")
	store := registerStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := tourgene.SolveRequest{
		RunID:        *runID,
		Population:   *population,
		Generations:  *generations,
		MutationRate: *mutation,
		Selection:    *selection,
		Seed:         *seed,
	}
	path := *citiesPath
	if *configPath != "" {
		loaded, err := loadSolveRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = overlaySetFlags(fs, loaded, req)
		if path == "" {
			path = loaded.CitiesPath
		}
	}
	if path == "" {
		return usageError("solve requires -cities or a config with a cities path")
	}
	if req.Seed < 0 {
		req.Seed = time.Now().UnixNano()
	}
	req.IncludeTable = *table
	req.CitiesPath = path

	cities, err := cityfile.Load(path)
	if err != nil {
		return err
	}
	req.Cities = cities

	client, err := newClient(ctx, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Solve(ctx, req)
	if err != nil {
		return err
	}

	if summary.Table != "" {
		fmt.Print(summary.Table)
	}
	if *curve > 0 {
		for _, point := range stats.LearningCurve(summary.History, *curve) {
			fmt.Printf("%d\t%g\n", point.Generation, point.Best)
		}
	}
	fmt.Printf("run: %s\n", summary.RunID)
	fmt.Printf("best tour: [%s]\n", strings.Join(summary.BestLabels, ", "))
	fmt.Printf("distance: %.2f\n", summary.BestDistance)
	return nil
}

func runBrute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("brute", flag.ContinueOnError)
	citiesPath := fs.String("cities", "", "city list JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *citiesPath == "" {
		return usageError("brute requires -cities")
	}

	cities, err := cityfile.Load(*citiesPath)
	if err != nil {
		return err
	}

	client, err := tourgene.NewClient(ctx, tourgene.Options{})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	best, err := client.BruteForce(ctx, cities)
	if err != nil {
		return err
	}
	fmt.Printf("best tour: %s\n", best)
	fmt.Printf("distance: %.2f\n", best.Distance)
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	runID := fs.String("run", "", "run identifier")
	summaryOnly := fs.Bool("summary", false, "print summary statistics instead of the series")
	store := registerStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("history requires -run")
	}

	client, err := newClient(ctx, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, ok, err := client.History(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *runID)
	}

	if *summaryOnly {
		runStats, err := stats.Summarize(history)
		if err != nil {
			return err
		}
		return printJSON(runStats)
	}
	for generation, best := range history {
		fmt.Printf("%d\t%g\n", generation, best)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	store := registerStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	for _, run := range runs {
		fmt.Println(run)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run", "", "run identifier")
	outPath := fs.String("out", "", "output path (defaults to exports/<run>.json)")
	resolution := fs.Int("resolution", 100, "learning curve resolution")
	store := registerStoreFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires -run")
	}

	client, err := newClient(ctx, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	bundle, err := client.Export(ctx, *runID, *resolution)
	if err != nil {
		return err
	}

	path := *outPath
	if path == "" {
		path = filepath.Join(exportsDir, *runID+".json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("exported %s\n", path)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
