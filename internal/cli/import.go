package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/spellcanon/internal/spell"
	"github.com/roach88/spellcanon/internal/store"
)

// ImportOptions holds import command flags.
type ImportOptions struct {
	*RootOptions
	Database string
	Legacy   bool
}

// ImportedRecord reports what happened to one spell.
type ImportedRecord struct {
	File   string `json:"file"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Hash   string `json:"hash,omitempty"`
	Status string `json:"status"` // "inserted" | "duplicate" | "pending"
}

// ImportFailure is a file or record that could not be imported.
type ImportFailure struct {
	File  string `json:"file"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Inserted   int              `json:"inserted"`
	Duplicates int              `json:"duplicates"`
	Pending    int              `json:"pending"`
	Records    []ImportedRecord `json:"records"`
	Failures   []ImportFailure  `json:"failures,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Hash spells and store them, skipping duplicates",
		Long: `Import JSON or YAML spell documents into the database. Each spell is
hashed first; a spell whose hash is already stored is reported as a duplicate
and not inserted.

With --legacy each file holds a list of flat legacy rows. These are mapped to
canonical spells and stored without a hash; run backfill afterwards.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "database path (default $SPELLCANON_DB_PATH)")
	cmd.Flags().BoolVar(&opts.Legacy, "legacy", false, "files contain legacy rows; store without hashing")

	return cmd
}

func runImport(opts *ImportOptions, files []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	log := opts.logger()

	st, err := openStore(formatter, opts.RootOptions, opts.Database, false)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	result := ImportResult{Records: []ImportedRecord{}}
	for _, path := range files {
		spells, err := loadForImport(path, opts.Legacy)
		if err != nil {
			result.Failures = append(result.Failures, ImportFailure{File: path, Error: err.Error()})
			log.Warn("import skipped file", "file", path, "error", err)
			continue
		}

		for _, sp := range spells {
			logMigration(log, path, sp)
			if opts.Legacy {
				rec, err := st.InsertPending(ctx, sp)
				if err != nil {
					result.Failures = append(result.Failures, ImportFailure{File: path, Name: sp.Name, Error: err.Error()})
					continue
				}
				result.Pending++
				result.Records = append(result.Records, ImportedRecord{File: path, ID: rec.ID, Name: rec.Name, Status: "pending"})
				continue
			}

			rec, inserted, err := st.Put(ctx, sp)
			if err != nil {
				result.Failures = append(result.Failures, ImportFailure{File: path, Name: sp.Name, Error: err.Error()})
				log.Warn("import rejected spell", "file", path, "name", sp.Name, "error", err)
				continue
			}
			status := "inserted"
			if inserted {
				result.Inserted++
			} else {
				status = "duplicate"
				result.Duplicates++
				log.Info("duplicate spell", "file", path, "name", sp.Name, "existing", rec.ID)
			}
			result.Records = append(result.Records, ImportedRecord{
				File: path, ID: rec.ID, Name: rec.Name, Hash: rec.ContentHash, Status: status,
			})
		}
	}

	return outputImportResult(formatter, result)
}

func loadForImport(path string, legacy bool) ([]*spell.CanonicalSpell, error) {
	if legacy {
		return LoadLegacy(path)
	}
	sp, err := LoadSpell(path)
	if err != nil {
		return nil, err
	}
	return []*spell.CanonicalSpell{sp}, nil
}

func outputImportResult(formatter *OutputFormatter, result ImportResult) error {
	failed := len(result.Failures) > 0

	if formatter.Format == "json" {
		if failed {
			if err := formatter.Failure(ErrCodeGeneric, fmt.Sprintf("%d import failure(s)", len(result.Failures)), result); err != nil {
				return err
			}
		} else if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, r := range result.Records {
			fmt.Fprintf(formatter.Writer, "%-9s %s  %s  %s\n", r.Status, r.ID, r.Name, r.Hash)
		}
		for _, f := range result.Failures {
			fmt.Fprintf(formatter.Writer, "failed    %s: %s\n", f.File, f.Error)
		}
		fmt.Fprintf(formatter.Writer, "\n%d inserted, %d duplicate, %d pending, %d failed\n",
			result.Inserted, result.Duplicates, result.Pending, len(result.Failures))
	}

	if failed {
		return NewExitError(ExitFailure, fmt.Sprintf("import failed for %d item(s)", len(result.Failures)))
	}
	return nil
}

// openStore opens the database named by flag or, failing that, by
// SPELLCANON_DB_PATH. With mustExist the file must already be present.
func openStore(formatter *OutputFormatter, opts *RootOptions, flag string, mustExist bool) (*store.Store, error) {
	path := flag
	if path == "" {
		path = opts.Config.DBPath
	}
	if path == "" {
		return nil, commandError(formatter, ErrCodeNotFound, "no database: pass --db or set SPELLCANON_DB_PATH", nil)
	}
	if mustExist {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, commandError(formatter, ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
		}
	}

	opts.logger().Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, commandError(formatter, ErrCodeStoreFailed, "failed to open database", err)
	}
	return st, nil
}
