package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spellcanon/internal/backfill"
)

// BackfillOptions holds backfill command flags.
type BackfillOptions struct {
	*RootOptions
	Database string
	All      bool
	Workers  int
	FailFast bool
}

// NewBackfillCommand creates the backfill command.
func NewBackfillCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackfillOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Compute missing content hashes in the database",
		Long: `Compute content hashes for stored spells that do not have one yet, or for
every spell with --all. Hashing runs in parallel; writes are applied one at a
time. A spell whose hash is already held by another row is reported as a
duplicate and left unhashed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackfill(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database path (default $SPELLCANON_DB_PATH)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "recompute every hash, not only missing ones")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel hash workers (default $SPELLCANON_WORKERS)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first spell that fails to hash")

	return cmd
}

func runBackfill(opts *BackfillOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	log := opts.logger()

	st, err := openStore(formatter, opts.RootOptions, opts.Database, true)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	workers := opts.Workers
	if workers <= 0 {
		workers = opts.Config.Workers
	}

	res, err := backfill.Run(cmd.Context(), st, backfill.Options{
		Workers:  workers,
		All:      opts.All,
		FailFast: opts.FailFast,
		Logger:   log,
	})
	if err != nil {
		_ = formatter.Error(ErrCodeHashFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "backfill failed", err)
	}

	problems := len(res.Failures) + len(res.Duplicates)
	if formatter.Format == "json" {
		if problems > 0 {
			if err := formatter.Failure(ErrCodeHashFailed, fmt.Sprintf("%d problem(s)", problems), res); err != nil {
				return err
			}
		} else if err := formatter.Success(res); err != nil {
			return err
		}
	} else {
		for _, d := range res.Duplicates {
			fmt.Fprintf(formatter.Writer, "duplicate %s: hash %s already held by %s\n", d.ID, d.Hash, d.HolderID)
		}
		for _, f := range res.Failures {
			fmt.Fprintf(formatter.Writer, "failed    %s\n", f.Error())
		}
		fmt.Fprintf(formatter.Writer, "%d scanned, %d updated, %d unchanged, %d duplicate, %d failed\n",
			res.Scanned, res.Updated, res.Unchanged, len(res.Duplicates), len(res.Failures))
	}

	if problems > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("backfill finished with %d problem(s)", problems))
	}
	return nil
}
