package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/spellcanon/internal/spell"
)

// Record is one stored spell row.
type Record struct {
	ID            string
	Seq           int64
	Name          string
	CanonicalData string
	ContentHash   string // empty until computed
	SchemaVersion int64
	CreatedAt     string
	UpdatedAt     string
}

// HasHash reports whether the row carries a content hash.
func (r Record) HasHash() bool {
	return r.ContentHash != ""
}

// Spell decodes the stored canonical data.
func (r Record) Spell() (*spell.CanonicalSpell, error) {
	sp, err := spell.Decode([]byte(r.CanonicalData))
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return sp, nil
}

const selectRecord = `
	SELECT id, seq, name, canonical_data, content_hash, schema_version, created_at, updated_at
	FROM spells
	`

// Get retrieves a single record by id.
// Returns sql.ErrNoRows if not found.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return scanRecordRow(s.db.QueryRowContext(ctx, selectRecord+`WHERE id = ?`, id))
}

// FindByHash retrieves the record holding hash.
// Returns sql.ErrNoRows if not found.
func (s *Store) FindByHash(ctx context.Context, hash string) (Record, error) {
	return scanRecordRow(s.db.QueryRowContext(ctx, selectRecord+`WHERE content_hash = ?`, hash))
}

// ListAll returns every record ordered by seq ASC, id ASC.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	return s.list(ctx, selectRecord+`ORDER BY seq ASC, id COLLATE BINARY ASC`)
}

// ListMissingHash returns the records whose content hash has not been
// computed, ordered by seq ASC, id ASC.
func (s *Store) ListMissingHash(ctx context.Context) ([]Record, error) {
	return s.list(ctx, selectRecord+`WHERE content_hash IS NULL ORDER BY seq ASC, id COLLATE BINARY ASC`)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM spells`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count spells: %w", err)
	}
	return n, nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spells: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spells: %w", err)
	}

	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(rows *sql.Rows) (Record, error) {
	rec, err := scanInto(rows)
	if err != nil {
		return Record{}, fmt.Errorf("scan spell: %w", err)
	}
	return rec, nil
}

// scanRecordRow scans a single row. sql.ErrNoRows is returned unwrapped so
// callers can compare against it.
func scanRecordRow(row *sql.Row) (Record, error) {
	return scanInto(row)
}

func scanInto(sc scanner) (Record, error) {
	var rec Record
	var hash sql.NullString
	if err := sc.Scan(
		&rec.ID, &rec.Seq, &rec.Name, &rec.CanonicalData, &hash,
		&rec.SchemaVersion, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return Record{}, err
	}
	rec.ContentHash = hash.String
	return rec, nil
}
