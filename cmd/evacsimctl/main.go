// Command evacsimctl is the reference CLI driving pkg/evacsim: simulate
// one door configuration, or search for the Pareto front of door
// configurations with NSGA-II or exhaustive brute force, dispatched by
// verb from argv.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"evacsim/internal/driver"
	"evacsim/internal/model"
	"evacsim/pkg/evacsim"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run returns the process exit code directly rather than an error, since
// the exit code is itself part of the external contract.
func run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: evacsimctl <simulate|optimize-nsga|optimize-brute> [flags]")
		return 1
	}

	var err error
	switch args[0] {
	case "simulate":
		err = runSimulate(ctx, args[1:])
	case "optimize-nsga":
		err = runOptimizeNSGA(ctx, args[1:])
	case "optimize-brute":
		err = runOptimizeBrute(ctx, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		return 1
	}
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, err)
	switch {
	case errors.Is(err, model.ErrTooLarge):
		return 3
	case errors.Is(err, model.ErrInvalidConfig), errors.Is(err, model.ErrInvalidMap):
		return 2
	default:
		return 1
	}
}

// commonFlags are shared across every subcommand: where the map and
// individuals descriptor live, which store backend to use, and where to
// write the result.
type commonFlags struct {
	mapPath         string
	individualsPath string
	storeKind       string
	dbPath          string
	out             string
}

func bindCommonFlags(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.StringVar(&cf.mapPath, "map", "", "path to the map text file (required)")
	fs.StringVar(&cf.individualsPath, "individuals", "", "path to the individuals descriptor JSON file (required)")
	fs.StringVar(&cf.storeKind, "store", "", "result store backend: memory|sqlite")
	fs.StringVar(&cf.dbPath, "db-path", "evacsim.db", "sqlite database path")
	fs.StringVar(&cf.out, "o", "", "output JSON file path (stdout if empty)")
	return cf
}

func (cf *commonFlags) load() (evacsim.MapConfig, []model.IndividualSpec, error) {
	if cf.mapPath == "" {
		return evacsim.MapConfig{}, nil, fmt.Errorf("evacsimctl: %w: -map is required", model.ErrInvalidConfig)
	}
	if cf.individualsPath == "" {
		return evacsim.MapConfig{}, nil, fmt.Errorf("evacsimctl: %w: -individuals is required", model.ErrInvalidConfig)
	}

	mapText, err := os.ReadFile(cf.mapPath)
	if err != nil {
		return evacsim.MapConfig{}, nil, fmt.Errorf("evacsimctl: read map: %w", err)
	}
	m, err := evacsim.LoadMap(string(mapText))
	if err != nil {
		return evacsim.MapConfig{}, nil, err
	}

	raw, err := os.ReadFile(cf.individualsPath)
	if err != nil {
		return evacsim.MapConfig{}, nil, fmt.Errorf("evacsimctl: read individuals: %w", err)
	}
	var descriptor driver.IndividualsDescriptor
	if err := json.Unmarshal(raw, &descriptor); err != nil {
		return evacsim.MapConfig{}, nil, fmt.Errorf("evacsimctl: %w: %s", model.ErrInvalidConfig, err)
	}

	return m, descriptor.Caracterizations, nil
}

func (cf *commonFlags) client() (*evacsim.Client, error) {
	c, err := evacsim.New(evacsim.Options{StoreKind: cf.storeKind, DBPath: cf.dbPath})
	if err != nil {
		return nil, err
	}
	if err := c.Init(context.Background()); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (cf *commonFlags) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if cf.out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cf.out, data, 0o644)
}

func loadExperimentConfig(path string) (driver.ExperimentConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return driver.ExperimentConfig{}, fmt.Errorf("evacsimctl: read experiment config: %w", err)
	}
	var cfg driver.ExperimentConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return driver.ExperimentConfig{}, fmt.Errorf("evacsimctl: %w: %s", model.ErrInvalidConfig, err)
	}
	return cfg, nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	cf := bindCommonFlags(fs)
	expPath := fs.String("experiment", "", "path to the experiment config JSON file (required)")
	gene := fs.String("gene", "", "door selection as a string of 0/1, one per candidate slot in discovery order")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *expPath == "" {
		return fmt.Errorf("evacsimctl: %w: -experiment is required", model.ErrInvalidConfig)
	}

	m, individuals, err := cf.load()
	if err != nil {
		return err
	}
	exp, err := loadExperimentConfig(*expPath)
	if err != nil {
		return err
	}
	bits, err := parseGene(*gene, len(m.Candidates))
	if err != nil {
		return err
	}

	c, err := cf.client()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	started := time.Now()
	result, err := c.Simulate(m, bits, individuals, exp)
	if err != nil {
		return err
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintf(os.Stderr, "simulated %s iterations in %s\n", humanize.Comma(int64(result.Iterations)), time.Since(started))
	}
	return cf.writeJSON(result)
}

func runOptimizeNSGA(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("optimize-nsga", flag.ContinueOnError)
	cf := bindCommonFlags(fs)
	expPath := fs.String("experiment", "", "path to the experiment config JSON file (required)")
	nsgaPath := fs.String("nsga", "", "path to the NSGA config JSON file (required)")
	seed := fs.Int64("seed", 1, "NSGA-II selection/variation RNG seed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *expPath == "" || *nsgaPath == "" {
		return fmt.Errorf("evacsimctl: %w: -experiment and -nsga are required", model.ErrInvalidConfig)
	}

	m, individuals, err := cf.load()
	if err != nil {
		return err
	}
	exp, err := loadExperimentConfig(*expPath)
	if err != nil {
		return err
	}
	nsgaRaw, err := os.ReadFile(*nsgaPath)
	if err != nil {
		return fmt.Errorf("evacsimctl: read nsga config: %w", err)
	}
	var nsga driver.NSGAConfig
	if err := json.Unmarshal(nsgaRaw, &nsga); err != nil {
		return fmt.Errorf("evacsimctl: %w: %s", model.ErrInvalidConfig, err)
	}

	c, err := cf.client()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	started := time.Now()
	tty := isatty.IsTerminal(os.Stdout.Fd())
	summary, err := c.OptimizeNSGA(ctx, m, individuals, exp, nsga, *seed)
	if err != nil && !errors.Is(err, model.ErrCancelled) {
		return err
	}
	if tty {
		fmt.Fprintf(os.Stderr, "nsga-ii: %s members in final front, elapsed %s\n",
			humanize.Comma(int64(len(summary.Front))), time.Since(started))
	}
	if writeErr := cf.writeJSON(summary); writeErr != nil {
		return writeErr
	}
	return err
}

func runOptimizeBrute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("optimize-brute", flag.ContinueOnError)
	cf := bindCommonFlags(fs)
	expPath := fs.String("experiment", "", "path to the experiment config JSON file (required)")
	threeObj := fs.Bool("three-objectives", false, "use (num_doors, iterations, distance) instead of (num_doors, distance)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *expPath == "" {
		return fmt.Errorf("evacsimctl: %w: -experiment is required", model.ErrInvalidConfig)
	}

	m, individuals, err := cf.load()
	if err != nil {
		return err
	}
	exp, err := loadExperimentConfig(*expPath)
	if err != nil {
		return err
	}
	exp.UseThreeObjectives = exp.UseThreeObjectives || *threeObj

	c, err := cf.client()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	started := time.Now()
	summary, err := c.OptimizeBrute(ctx, m, individuals, exp)
	if err != nil {
		return err
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintf(os.Stderr, "brute force: %s front members, elapsed %s\n",
			humanize.Comma(int64(len(summary.Front))), time.Since(started))
	}
	return cf.writeJSON(summary)
}

// parseGene renders a "0101" style flag string into a bool slice of
// length numCandidates; an empty flag yields the all-inactive gene.
func parseGene(s string, numCandidates int) ([]bool, error) {
	bits := make([]bool, numCandidates)
	if s == "" {
		return bits, nil
	}
	if len(s) != numCandidates {
		return nil, fmt.Errorf("evacsimctl: %w: -gene must have exactly %d characters, got %d", model.ErrInvalidConfig, numCandidates, len(s))
	}
	for i, ch := range s {
		switch ch {
		case '1':
			bits[i] = true
		case '0':
			bits[i] = false
		default:
			return nil, fmt.Errorf("evacsimctl: %w: -gene must contain only 0/1, found %q", model.ErrInvalidConfig, ch)
		}
	}
	return bits, nil
}
