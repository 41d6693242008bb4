package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spellcanon/internal/backfill"
)

// VerifyOptions holds verify command flags.
type VerifyOptions struct {
	*RootOptions
	Database string
	Workers  int
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check stored hashes against recomputed ones",
		Long: `Recompute the content hash of every stored spell and report spells with
no hash, spells whose stored hash is wrong, and groups of spells that hash to
the same value. Nothing is written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database path (default $SPELLCANON_DB_PATH)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel hash workers (default $SPELLCANON_WORKERS)")

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
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

	report, err := backfill.Verify(cmd.Context(), st, backfill.Options{Workers: workers, Logger: log})
	if err != nil {
		return commandError(formatter, ErrCodeStoreFailed, "verify failed", err)
	}

	if formatter.Format == "json" {
		if !report.OK() {
			if err := formatter.Failure(ErrCodeHashFailed, "integrity check failed", report); err != nil {
				return err
			}
		} else if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		writeIntegrityReport(formatter, report)
	}

	if !report.OK() {
		return NewExitError(ExitFailure, "integrity check failed")
	}
	return nil
}

func writeIntegrityReport(formatter *OutputFormatter, report backfill.IntegrityReport) {
	w := formatter.Writer
	for _, id := range report.Missing {
		fmt.Fprintf(w, "missing   %s\n", id)
	}
	for _, m := range report.Mismatches {
		fmt.Fprintf(w, "mismatch  %s: stored %s, computed %s\n", m.ID, m.Stored, m.Computed)
	}
	for _, d := range report.Duplicates {
		fmt.Fprintf(w, "duplicate %s: %s\n", d.Hash, strings.Join(d.IDs, ", "))
	}
	for _, f := range report.Failures {
		fmt.Fprintf(w, "failed    %s\n", f.Error())
	}

	if report.OK() {
		fmt.Fprintf(w, "✓ %d spell(s) verified\n", report.Checked)
		return
	}
	fmt.Fprintf(w, "✗ %d checked: %d missing, %d mismatched, %d duplicate group(s), %d failed\n",
		report.Checked, len(report.Missing), len(report.Mismatches), len(report.Duplicates), len(report.Failures))
}
