package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spellcanon/internal/spell"
)

func TestValidateValidSpell(t *testing.T) {
	path := writeFile(t, "fireball.yaml", fireballYAML)

	out, err := execute(t, NewValidateCommand(testOptions("text")), path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "is valid")
}

func TestValidateValidSpellJSON(t *testing.T) {
	path := writeFile(t, "fireball.json", fireballJSON)

	out, err := execute(t, NewValidateCommand(testOptions("json")), path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateInvalidSpell(t *testing.T) {
	path := writeFile(t, "cantrip.json", invalidJSON)

	out, err := execute(t, NewValidateCommand(testOptions("text")), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "validation failed")
	assert.Contains(t, out, spell.ErrCantripLevel)
}

func TestValidateInvalidSpellJSON(t *testing.T) {
	path := writeFile(t, "cantrip.json", invalidJSON)

	out, err := execute(t, NewValidateCommand(testOptions("json")), path)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.NotEmpty(t, resp.Data.Errors)
	assert.Equal(t, spell.ErrCantripLevel, resp.Error.Code)
}

func TestValidateConstructionError(t *testing.T) {
	path := writeFile(t, "conflict.json", conflictJSON)

	out, err := execute(t, NewValidateCommand(testOptions("text")), path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, ErrCodeConstruction)
}

func TestValidateNonExistentFile(t *testing.T) {
	out, err := execute(t, NewValidateCommand(testOptions("text")), "/nonexistent/spell.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}

func TestValidateRequiresOneArg(t *testing.T) {
	_, err := execute(t, NewValidateCommand(testOptions("text")))
	assert.Error(t, err)
}
