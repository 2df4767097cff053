package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/srplsh"
	"github.com/hupe1980/srplsh/csr"
)

// StatsCommand builds the index and reports how vectors spread over buckets.
type StatsCommand struct {
	indexFlags
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	sc := &StatsCommand{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Build the index and print band statistics",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	sc.register(cmd)

	return cmd
}

func (sc *StatsCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := sc.resolve(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	d, compression, err := loadDataset(sc.inputPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts, err := retrieverOptions(cfg, logger, srplsh.NoopMetricsCollector{})
	if err != nil {
		return err
	}

	r, err := srplsh.New(cmd.Context(), d.Corpus, d.Cols, opts...)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	return writeStats(cmd.OutOrStdout(), d, compression, r)
}

func writeStats(w io.Writer, d *csr.Dataset, compression csr.Compression, r *srplsh.Retriever) error {
	idx := r.Index()
	cfg := idx.Config()

	fmt.Fprintf(w, "vectors:     %s\n", humanize.Comma(int64(d.Rows)))
	fmt.Fprintf(w, "dimension:   %s\n", humanize.Comma(int64(d.Cols)))
	fmt.Fprintf(w, "non-zeros:   %s\n", humanize.Comma(int64(d.NNZ)))
	fmt.Fprintf(w, "queries:     %s\n", humanize.Comma(int64(len(d.Queries))))
	fmt.Fprintf(w, "compression: %s\n", compression)
	fmt.Fprintf(w, "bands:       %d x %d bits\n", cfg.NumBands, cfg.NumBits)
	fmt.Fprintf(w, "memory:      %s\n\n", humanize.IBytes(idx.MemoryBytes()))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BAND\tSEED\tSTRATEGY\tBUCKETS\tIDS\tMAX\tCAPACITY")

	for _, b := range idx.Stats() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			b.Band,
			b.Seed,
			b.Bucket.Strategy,
			humanize.Comma(int64(b.Bucket.Buckets)),
			humanize.Comma(int64(b.Bucket.IDs)),
			humanize.Comma(int64(b.Bucket.MaxBucket)),
			humanize.Comma(int64(b.Bucket.Capacity)),
		)
	}

	return tw.Flush()
}
