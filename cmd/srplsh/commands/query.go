package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/srplsh"
	"github.com/hupe1980/srplsh/csr"
	"github.com/hupe1980/srplsh/metrics/prometheus"
)

// ErrInvalidTopK is returned when neither the dataset nor --k asks for results.
var ErrInvalidTopK = errors.New("top-k must be positive")

// QueryCommand answers every query of a dataset.
type QueryCommand struct {
	indexFlags

	k           int
	metricsFile string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	qc := &QueryCommand{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Answer every query of a CSR dataset",
		Long: `Read a CSR dataset, build the index over its corpus and write one line of
result ids per query to stdout, best match first.`,
		Args: cobra.NoArgs,
		RunE: qc.run,
	}

	qc.register(cmd)
	cmd.Flags().IntVarP(&qc.k, "k", "k", 0, "Results per query (0 = use the dataset header)")
	cmd.Flags().StringVar(&qc.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	return cmd
}

func (qc *QueryCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := qc.resolve(cmd)
	if err != nil {
		return err
	}

	if qc.metricsFile != "" {
		cfg.Metrics.File = qc.metricsFile
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	d, _, err := loadDataset(qc.inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	k := d.TopK
	if qc.k > 0 {
		k = qc.k
	}

	if k <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopK, k)
	}

	var mc srplsh.MetricsCollector = srplsh.NoopMetricsCollector{}

	var collector *prometheus.Collector
	if cfg.Metrics.File != "" {
		collector = prometheus.NewCollector()
		mc = collector
	}

	opts, err := retrieverOptions(cfg, logger, mc)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	r, err := srplsh.New(ctx, d.Corpus, d.Cols, opts...)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	out := csr.NewResultWriter(cmd.OutOrStdout())

	for i, q := range d.Queries {
		results, err := r.Search(ctx, q, k)
		if err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}

		err = out.Write(srplsh.IDs(results))
		if err != nil {
			return err
		}
	}

	err = out.Flush()
	if err != nil {
		return err
	}

	if collector != nil {
		err = collector.WriteToTextfile(cfg.Metrics.File)
		if err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}
