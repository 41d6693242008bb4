package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spellcanon/internal/spell"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	File   string                  `json:"file"`
	Valid  bool                    `json:"valid"`
	Errors []spell.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a spell against the canonical schema",
		Long: `Normalize a JSON or YAML spell document and report every schema and
cross-field violation, each with its field path and E2xx code.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sp, err := LoadSpell(path)
	if err != nil {
		return loadFailure(formatter, err)
	}
	logMigration(opts.logger(), path, sp)
	formatter.VerboseLog("validating %s (%s)", path, sp.Name)

	err = spell.Validate(sp)
	if err == nil {
		return outputValidateSuccess(formatter, path)
	}

	var verrs spell.ValidationErrors
	if !errors.As(err, &verrs) {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "validation failed", err)
	}
	return outputValidationErrors(formatter, path, verrs)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, path string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{File: path, Valid: true})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, path string, errs spell.ValidationErrors) error {
	if formatter.Format == "json" {
		result := ValidationResult{File: path, Errors: errs}
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintf(formatter.Writer, "✗ %s: validation failed\n", path)
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
