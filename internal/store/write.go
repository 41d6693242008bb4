package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/spellcanon/internal/spell"
)

// ErrDuplicateHash is returned when a hash is already held by another row.
var ErrDuplicateHash = errors.New("content hash already stored")

// ErrIDTaken is returned by Put when the record's id belongs to a row with
// different content.
var ErrIDTaken = errors.New("id already stored with different content")

// Put hashes sp and stores it unless a row with the same content hash
// exists, in which case the existing row is returned with inserted=false.
// Hashing validates the record, so invalid spells never reach the table.
//
// Records without an id get one from the store's IDGenerator.
func (s *Store) Put(ctx context.Context, sp *spell.CanonicalSpell) (rec Record, inserted bool, err error) {
	hash, err := spell.ComputeHash(sp)
	if err != nil {
		return Record{}, false, fmt.Errorf("put spell: %w", err)
	}
	rec, err = s.newRecord(sp)
	if err != nil {
		return Record{}, false, fmt.Errorf("put spell: %w", err)
	}
	rec.ContentHash = hash

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, false, fmt.Errorf("put spell: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	existing, err := scanRecordRow(tx.QueryRowContext(ctx, selectRecord+`WHERE content_hash = ?`, hash))
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return Record{}, false, fmt.Errorf("put spell: lookup hash: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO spells
		(id, seq, name, canonical_data, content_hash, schema_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		rec.ID,
		rec.Seq,
		rec.Name,
		rec.CanonicalData,
		rec.ContentHash,
		rec.SchemaVersion,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("put spell: insert: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Record{}, false, fmt.Errorf("put spell: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return Record{}, false, fmt.Errorf("put spell %q: %w", rec.ID, ErrIDTaken)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, false, fmt.Errorf("put spell: commit: %w", err)
	}
	return rec, true, nil
}

// InsertPending stores sp without a content hash. It is the import path for
// legacy rows that are hashed later by a backfill; the record is normalized
// but not validated. Duplicate ids are silently ignored.
func (s *Store) InsertPending(ctx context.Context, sp *spell.CanonicalSpell) (Record, error) {
	if sp == nil {
		return Record{}, fmt.Errorf("insert pending: spell is nil")
	}
	rec, err := s.newRecord(sp)
	if err != nil {
		return Record{}, fmt.Errorf("insert pending: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spells
		(id, seq, name, canonical_data, content_hash, schema_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Seq,
		rec.Name,
		rec.CanonicalData,
		rec.SchemaVersion,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert pending: %w", err)
	}
	return rec, nil
}

// UpdateHash sets the content hash of row id. It returns ErrDuplicateHash
// when another row already holds hash, and sql.ErrNoRows when id is unknown.
func (s *Store) UpdateHash(ctx context.Context, id, hash string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE spells SET content_hash = ?, updated_at = ?
		WHERE id = ?
	`, hash, s.timestamp(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update hash %s: %w", id, ErrDuplicateHash)
		}
		return fmt.Errorf("update hash %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update hash %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update hash %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (s *Store) newRecord(sp *spell.CanonicalSpell) (Record, error) {
	if sp.ID == "" {
		sp = sp.Clone()
		sp.ID = s.ids.Generate()
	}
	n := spell.Normalize(sp)
	data, err := spell.StructuredJSON(n)
	if err != nil {
		return Record{}, err
	}
	ts := s.timestamp()
	return Record{
		ID:            n.ID,
		Seq:           s.clock.Next(),
		Name:          n.Name,
		CanonicalData: string(data),
		SchemaVersion: n.SchemaVersion,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
