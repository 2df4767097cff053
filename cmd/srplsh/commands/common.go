// Package commands implements CLI command handlers for srplsh.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srplsh"
	"github.com/hupe1980/srplsh/csr"
	"github.com/hupe1980/srplsh/internal/config"
	"github.com/hupe1980/srplsh/lsh"
)

// indexFlags are shared by every command that builds an index. Flags that
// were set explicitly override the loaded configuration.
type indexFlags struct {
	configPath string
	inputPath  string

	bits       int
	bands      int
	multiplier int
	strategy   string
	seed       uint64
	workers    int
	logLevel   string
	logFormat  string
}

func (f *indexFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default: .srplsh.yaml in CWD or $HOME)")
	cmd.Flags().StringVarP(&f.inputPath, "input", "i", "-", "Input dataset path; zstd/lz4 detected automatically ('-' = stdin)")

	cmd.Flags().IntVar(&f.bits, "bits", config.DefaultIndexBits, "Projections per band (1-64)")
	cmd.Flags().IntVar(&f.bands, "bands", config.DefaultIndexBands, "Number of independent bands")
	cmd.Flags().IntVar(&f.multiplier, "multiplier", config.DefaultIndexMultiplier,
		"Scan the corpus when fewer than multiplier*k candidates are found (0 = only when empty)")
	cmd.Flags().StringVar(&f.strategy, "strategy", config.DefaultIndexStrategy,
		"Bucket strategy: auto, open-addressing, chaining, direct, map")
	cmd.Flags().Uint64Var(&f.seed, "seed", config.DefaultIndexSeed, "Seed of band 0; band b uses seed+b")
	cmd.Flags().IntVar(&f.workers, "workers", config.DefaultIndexWorkers, "Bands built in parallel (<= 1 = sequential)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", config.DefaultLogFormat, "Log format: text, json")
}

func (f *indexFlags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("bits") {
		cfg.Index.Bits = f.bits
	}

	if flags.Changed("bands") {
		cfg.Index.Bands = f.bands
	}

	if flags.Changed("multiplier") {
		cfg.Index.Multiplier = f.multiplier
	}

	if flags.Changed("strategy") {
		cfg.Index.Strategy = f.strategy
	}

	if flags.Changed("seed") {
		cfg.Index.Seed = f.seed
	}

	if flags.Changed("workers") {
		cfg.Index.Workers = f.workers
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}

	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate flags: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*srplsh.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Log.Format, "json") {
		return srplsh.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}

	return srplsh.NewLogger(slog.NewTextHandler(w, opts)), nil
}

func retrieverOptions(cfg *config.Config, logger *srplsh.Logger, mc srplsh.MetricsCollector) ([]srplsh.Option, error) {
	strategy, err := cfg.Index.BucketStrategy()
	if err != nil {
		return nil, err
	}

	return []srplsh.Option{
		srplsh.WithIndexConfig(lsh.Config{
			NumBands:     cfg.Index.Bands,
			NumBits:      cfg.Index.Bits,
			SeedBase:     cfg.Index.Seed,
			Strategy:     strategy,
			BuildWorkers: cfg.Index.Workers,
		}),
		srplsh.WithCandidateMultiplier(cfg.Index.Multiplier),
		srplsh.WithLogger(logger),
		srplsh.WithMetricsCollector(mc),
	}, nil
}

func loadDataset(path string, stdin io.Reader) (*csr.Dataset, csr.Compression, error) {
	if path == "" || path == "-" {
		rc, c, err := csr.Decompress(stdin)
		if err != nil {
			return nil, c, fmt.Errorf("open stdin: %w", err)
		}
		defer rc.Close()

		d, err := csr.Read(rc)
		return d, c, err
	}

	rc, c, err := csr.Open(path)
	if err != nil {
		return nil, c, fmt.Errorf("open input: %w", err)
	}
	defer rc.Close()

	d, err := csr.Read(rc)
	if err != nil {
		return nil, c, fmt.Errorf("read %s: %w", path, err)
	}

	return d, c, nil
}
