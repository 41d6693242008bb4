package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spellcanon/internal/spell"
)

// HashResult is the output of the hash command.
type HashResult struct {
	File string `json:"file"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// DocumentResult carries a JSON document produced by canon or normalize.
type DocumentResult struct {
	File     string          `json:"file"`
	Document json.RawMessage `json:"document"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Print the content hash of a spell",
		Long: `Normalize and validate a JSON or YAML spell document and print the
lowercase hex SHA-256 of its canonical JSON.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(rootOpts, args[0], cmd)
		},
	}
}

func runHash(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sp, err := LoadSpell(path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	logMigration(opts.logger(), path, sp)

	hash, err := spell.ComputeHash(sp)
	if err != nil {
		return hashFailure(formatter, err)
	}
	formatter.VerboseLog("hashed %s (%s)", path, sp.Name)

	if formatter.Format == "json" {
		return formatter.Success(HashResult{File: path, Name: sp.Name, Hash: hash})
	}
	fmt.Fprintln(formatter.Writer, hash)
	return nil
}

// hashFailure reports why a record could not be hashed.
func hashFailure(f *OutputFormatter, err error) error {
	var verrs spell.ValidationErrors
	if errors.As(err, &verrs) {
		_ = f.Error(verrs[0].Code, "spell is invalid", verrs)
		return WrapExitError(ExitFailure, "hash failed", err)
	}
	var cerr *spell.ConstructionError
	if errors.As(err, &cerr) {
		_ = f.Error(ErrCodeConstruction, cerr.Error(), nil)
		return WrapExitError(ExitFailure, "hash failed", err)
	}
	_ = f.Error(ErrCodeHashFailed, err.Error(), nil)
	return WrapExitError(ExitFailure, "hash failed", err)
}

// NewCanonCommand creates the canon command.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "canon <file>",
		Short: "Print the pruned canonical JSON of a spell",
		Long: `Print the exact bytes that are hashed: normalized, with metadata and
default values removed, serialized per RFC 8785. The record is not validated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocument(rootOpts, args[0], cmd, spell.ToCanonicalJSON)
		},
	}
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "normalize <file>",
		Short:         "Print the normalized spell with defaults and metadata",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocument(rootOpts, args[0], cmd, spell.StructuredJSON)
		},
	}
}

func runDocument(opts *RootOptions, path string, cmd *cobra.Command, render func(*spell.CanonicalSpell) ([]byte, error)) error {
	formatter := newFormatter(opts, cmd)

	sp, err := LoadSpell(path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	logMigration(opts.logger(), path, sp)

	doc, err := render(sp)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "render failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(DocumentResult{File: path, Document: doc})
	}
	fmt.Fprintln(formatter.Writer, string(bytes.TrimSpace(doc)))
	return nil
}
