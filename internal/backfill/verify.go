package backfill

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Mismatch is a record whose stored hash differs from the recomputed one.
type Mismatch struct {
	ID       string `json:"id"`
	Stored   string `json:"stored"`
	Computed string `json:"computed"`
}

// DuplicateGroup is a set of records that hash to the same value.
type DuplicateGroup struct {
	Hash string   `json:"hash"`
	IDs  []string `json:"ids"`
}

// IntegrityReport is the result of Verify.
type IntegrityReport struct {
	Checked    int              `json:"checked"`
	Missing    []string         `json:"missing,omitempty"`
	Mismatches []Mismatch       `json:"mismatches,omitempty"`
	Duplicates []DuplicateGroup `json:"duplicates,omitempty"`
	Failures   []Failure        `json:"failures,omitempty"`
}

// OK reports whether every record has a correct, unique hash.
func (r IntegrityReport) OK() bool {
	return len(r.Missing) == 0 &&
		len(r.Mismatches) == 0 &&
		len(r.Duplicates) == 0 &&
		len(r.Failures) == 0
}

// Verify recomputes the hash of every stored record and compares it with
// the stored value. It never writes. Records whose recomputed hashes
// collide are reported as duplicate groups, ordered by hash.
func Verify(ctx context.Context, st Store, opts Options) (IntegrityReport, error) {
	log := opts.logger()

	records, err := st.ListAll(ctx)
	if err != nil {
		return IntegrityReport{}, fmt.Errorf("verify: list records: %w", err)
	}

	// FailFast would hide the rest of the report.
	opts.FailFast = false
	outcomes, err := computeAll(ctx, records, opts)
	if err != nil {
		return IntegrityReport{}, err
	}

	report := IntegrityReport{Checked: len(records)}
	byHash := map[string][]string{}
	for _, o := range outcomes {
		if o.err != nil {
			report.Failures = append(report.Failures, Failure{ID: o.rec.ID, Name: o.rec.Name, Err: o.err})
			continue
		}
		byHash[o.hash] = append(byHash[o.hash], o.rec.ID)

		switch {
		case !o.rec.HasHash():
			report.Missing = append(report.Missing, o.rec.ID)
		case o.rec.ContentHash != o.hash:
			report.Mismatches = append(report.Mismatches, Mismatch{
				ID:       o.rec.ID,
				Stored:   o.rec.ContentHash,
				Computed: o.hash,
			})
		}
	}

	for hash, ids := range byHash {
		if len(ids) > 1 {
			report.Duplicates = append(report.Duplicates, DuplicateGroup{Hash: hash, IDs: ids})
		}
	}
	slices.SortFunc(report.Duplicates, func(a, b DuplicateGroup) int {
		return strings.Compare(a.Hash, b.Hash)
	})

	log.Info("verify finished",
		"checked", report.Checked,
		"missing", len(report.Missing),
		"mismatches", len(report.Mismatches),
		"duplicates", len(report.Duplicates),
		"failures", len(report.Failures),
	)
	return report, nil
}
