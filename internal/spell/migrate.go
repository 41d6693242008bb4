package spell

import (
	"fmt"

	"github.com/roach88/spellcanon/internal/schema"
)

// MigrationReport describes what Migrate did to a record's schema version.
type MigrationReport struct {
	FromVersion int64    `json:"from_version"`
	ToVersion   int64    `json:"to_version"`
	Notes       []string `json:"notes,omitempty"`
}

// Migrated reports whether the version changed.
func (r MigrationReport) Migrated() bool {
	return r.FromVersion != r.ToVersion
}

// Future reports whether the record claims a version newer than this
// build understands. Such records are hashed as-is.
func (r MigrationReport) Future() bool {
	return r.FromVersion > schema.Default().CurrentVersion()
}

// Migrate returns a copy of s upgraded to the current schema version and a
// report of the change. Negative versions are left for Validate to reject.
func Migrate(s *CanonicalSpell) (*CanonicalSpell, MigrationReport) {
	if s == nil {
		return nil, MigrationReport{}
	}
	out := s.Clone()
	report := migrateVersion(out, schema.Default().CurrentVersion())
	return out, report
}

// migrateVersion upgrades s in place. Every released version so far only
// added optional fields, so an upgrade is a version bump.
func migrateVersion(s *CanonicalSpell, current int64) MigrationReport {
	report := MigrationReport{FromVersion: s.SchemaVersion, ToVersion: s.SchemaVersion}
	switch v := s.SchemaVersion; {
	case v < 0:
		report.Notes = append(report.Notes, fmt.Sprintf("schema_version %d is invalid", v))
	case v < current:
		s.SchemaVersion = current
		report.ToVersion = current
		report.Notes = append(report.Notes, fmt.Sprintf("upgraded schema_version %d to %d", v, current))
	case v > current:
		report.Notes = append(report.Notes, fmt.Sprintf("schema_version %d is newer than %d; kept as-is", v, current))
	}
	return report
}
