package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spellcanon/internal/spell"
)

// Error code constants - unified across all CLI commands. Record-level
// validation codes (E2xx) come from the spell package.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeReadFailed   = "E002" // Input could not be read
	ErrCodeParseFailed  = "E003" // Input is not a well-formed spell document
	ErrCodeConstruction = "E004" // Classifier combination rejected at construction
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeStoreFailed  = "E006" // Database open/read/write error
	ErrCodeHashFailed   = "E007" // Hash could not be computed
)

// LoadError represents an error that occurred while loading a spell file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Path, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadSpell reads a JSON or YAML spell document. Unknown fields are
// rejected and the tradition is derived when absent.
func LoadSpell(path string) (*spell.CanonicalSpell, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	sp, err := spell.Decode(data)
	if err != nil {
		var cerr *spell.ConstructionError
		if errors.As(err, &cerr) {
			return nil, &LoadError{Code: ErrCodeConstruction, Path: path, Message: "spell rejected", Err: err}
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: "invalid spell document", Err: err}
	}
	return sp, nil
}

// LoadLegacy reads a JSON or YAML list of flat legacy rows and maps each
// one to a CanonicalSpell.
func LoadLegacy(path string) ([]*spell.CanonicalSpell, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	var rows []spell.LegacyRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: "invalid legacy document", Err: err}
	}
	spells := make([]*spell.CanonicalSpell, 0, len(rows))
	for _, row := range rows {
		sp, err := spell.FromLegacy(row)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeConstruction, Path: path, Message: "legacy row rejected", Err: err}
		}
		spells = append(spells, sp)
	}
	return spells, nil
}

// readDocument returns the file content as JSON. YAML files (.yaml, .yml)
// are converted; anything else is taken as JSON.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "read failed", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: "invalid YAML", Err: err}
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Path: path, Message: "YAML is not representable as JSON", Err: err}
		}
		return out, nil
	default:
		return data, nil
	}
}

// loadErrorCode returns the CLI code carried by err.
func loadErrorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	return ErrCodeGeneric
}

// loadFailure reports a LoadError. Rejected records are validation
// failures (exit 1); everything else is a command error (exit 2).
func loadFailure(f *OutputFormatter, err error) error {
	code := loadErrorCode(err)
	_ = f.Error(code, err.Error(), nil)
	if code == ErrCodeConstruction {
		return WrapExitError(ExitFailure, code, err)
	}
	return WrapExitError(ExitCommandError, code, err)
}

// logMigration surfaces schema version changes for a loaded record.
func logMigration(log *slog.Logger, path string, sp *spell.CanonicalSpell) {
	_, report := spell.Migrate(sp)
	switch {
	case report.Future():
		log.Warn("record uses a newer schema version; hashing as-is",
			"file", path, "version", report.FromVersion)
	case report.Migrated():
		log.Debug("record migrated",
			"file", path, "from", report.FromVersion, "to", report.ToVersion)
	}
}
