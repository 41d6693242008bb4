// Package backfill recomputes content hashes for stored spells.
//
// Hashing runs in parallel on a bounded errgroup; writes are applied one at
// a time in seq order so the store sees a single writer and duplicate
// detection is deterministic.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/spellcanon/internal/spell"
	"github.com/roach88/spellcanon/internal/store"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Store is the persistence the driver needs. Implemented by *store.Store.
type Store interface {
	ListAll(ctx context.Context) ([]store.Record, error)
	ListMissingHash(ctx context.Context) ([]store.Record, error)
	FindByHash(ctx context.Context, hash string) (store.Record, error)
	UpdateHash(ctx context.Context, id, hash string) error
}

// Options configures a run.
type Options struct {
	Workers  int
	All      bool // recompute every record, not only those without a hash
	FailFast bool // stop at the first record that fails to hash
	Logger   *slog.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return DefaultWorkers
	}
	return o.Workers
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Failure is a record that could not be hashed or written.
type Failure struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Err  error  `json:"-"`
}

// Error returns the failure's error text.
func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.ID, f.Name, f.Err)
}

// Duplicate is a record whose hash is already held by another row.
type Duplicate struct {
	ID       string `json:"id"`
	Hash     string `json:"hash"`
	HolderID string `json:"holder_id"`
}

// Result summarizes a backfill run.
type Result struct {
	Scanned    int         `json:"scanned"`
	Updated    int         `json:"updated"`
	Unchanged  int         `json:"unchanged"`
	Migrated   int         `json:"migrated"`
	Duplicates []Duplicate `json:"duplicates,omitempty"`
	Failures   []Failure   `json:"failures,omitempty"`
}

// outcome is the per-record result of the parallel phase.
type outcome struct {
	rec    store.Record
	hash   string
	report spell.MigrationReport
	err    error
}

// Run computes content hashes for stored records and writes the ones that
// are missing or changed.
func Run(ctx context.Context, st Store, opts Options) (Result, error) {
	log := opts.logger()

	list := st.ListMissingHash
	if opts.All {
		list = st.ListAll
	}
	records, err := list(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("backfill: list records: %w", err)
	}
	log.Info("backfill started", "records", len(records), "all", opts.All, "workers", opts.workers())

	outcomes, err := computeAll(ctx, records, opts)
	if err != nil {
		return Result{}, err
	}

	res := Result{Scanned: len(records)}
	for _, o := range outcomes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		logMigration(log, o)
		if o.report.Migrated() {
			res.Migrated++
		}
		if o.err != nil {
			res.Failures = append(res.Failures, Failure{ID: o.rec.ID, Name: o.rec.Name, Err: o.err})
			log.Warn("hash failed", "id", o.rec.ID, "name", o.rec.Name, "error", o.err)
			continue
		}
		if o.hash == o.rec.ContentHash {
			res.Unchanged++
			continue
		}

		err := st.UpdateHash(ctx, o.rec.ID, o.hash)
		switch {
		case err == nil:
			res.Updated++
			log.Debug("hash updated", "id", o.rec.ID, "hash", o.hash)
		case errors.Is(err, store.ErrDuplicateHash):
			dup := Duplicate{ID: o.rec.ID, Hash: o.hash}
			if holder, ferr := st.FindByHash(ctx, o.hash); ferr == nil {
				dup.HolderID = holder.ID
			}
			res.Duplicates = append(res.Duplicates, dup)
			log.Warn("duplicate content hash", "id", dup.ID, "holder", dup.HolderID, "hash", dup.Hash)
		default:
			if opts.FailFast {
				return res, fmt.Errorf("backfill: %w", err)
			}
			res.Failures = append(res.Failures, Failure{ID: o.rec.ID, Name: o.rec.Name, Err: err})
			log.Warn("write failed", "id", o.rec.ID, "error", err)
		}
	}

	log.Info("backfill finished",
		"updated", res.Updated,
		"unchanged", res.Unchanged,
		"duplicates", len(res.Duplicates),
		"failures", len(res.Failures),
	)
	return res, nil
}

// computeAll hashes every record on a bounded errgroup. Outcomes keep the
// input order. With FailFast the first hashing error cancels the rest.
func computeAll(ctx context.Context, records []store.Record, opts Options) ([]outcome, error) {
	outcomes := make([]outcome, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = compute(rec)
			if opts.FailFast && outcomes[i].err != nil {
				return fmt.Errorf("backfill %s: %w", rec.ID, outcomes[i].err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func compute(rec store.Record) outcome {
	o := outcome{rec: rec}
	sp, err := rec.Spell()
	if err != nil {
		o.err = err
		return o
	}
	_, o.report = spell.Migrate(sp)
	o.hash, o.err = spell.ComputeHash(sp)
	return o
}

func logMigration(log *slog.Logger, o outcome) {
	switch {
	case o.report.Future():
		log.Warn("record uses a newer schema version",
			"id", o.rec.ID, "version", o.report.FromVersion)
	case o.report.Migrated():
		log.Info("record migrated",
			"id", o.rec.ID, "from", o.report.FromVersion, "to", o.report.ToVersion)
	}
}
