package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spellcanon/internal/store"
)

func TestImport_InsertsAndDeduplicates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spells.db")
	fb := writeFile(t, "fireball.json", fireballJSON)
	fbYAML := writeFile(t, "fireball.yaml", fireballYAML)
	lb := writeFile(t, "lightning.json", lightningJSON)

	out, err := execute(t, NewImportCommand(testOptions("json")), "--db", db, fb, fbYAML, lb)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Inserted)
	assert.Equal(t, 1, resp.Data.Duplicates)
	require.Len(t, resp.Data.Records, 3)
	assert.Equal(t, "duplicate", resp.Data.Records[1].Status)
	assert.Equal(t, resp.Data.Records[0].ID, resp.Data.Records[1].ID)
	assert.Equal(t, fireballHash(t), resp.Data.Records[0].Hash)
}

func TestImport_ReportsFailures(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spells.db")
	good := writeFile(t, "fireball.json", fireballJSON)
	bad := writeFile(t, "cantrip.json", invalidJSON)

	out, err := execute(t, NewImportCommand(testOptions("text")), "--db", db, good, bad, "/nonexistent.json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "1 inserted, 0 duplicate, 0 pending, 2 failed")
}

func TestImport_RequiresDatabase(t *testing.T) {
	path := writeFile(t, "fireball.json", fireballJSON)

	out, err := execute(t, NewImportCommand(testOptions("text")), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "SPELLCANON_DB_PATH")
}

func TestImportLegacy_ThenBackfillAndVerify(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spells.db")
	rows := writeFile(t, "legacy.yaml", legacyYAML)

	out, err := execute(t, NewImportCommand(testOptions("text")), "--db", db, "--legacy", rows)
	require.NoError(t, err)
	assert.Contains(t, out, "0 inserted, 0 duplicate, 2 pending, 0 failed")

	// Unhashed rows fail verification.
	out, err = execute(t, NewVerifyCommand(testOptions("text")), "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "missing   legacy-1")

	out, err = execute(t, NewBackfillCommand(testOptions("text")), "--db", db, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2 scanned, 2 updated, 0 unchanged, 0 duplicate, 0 failed")

	out, err = execute(t, NewVerifyCommand(testOptions("text")), "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "2 spell(s) verified")

	// Recomputing everything changes nothing.
	out, err = execute(t, NewBackfillCommand(testOptions("text")), "--db", db, "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "2 scanned, 0 updated, 2 unchanged")
}

func TestBackfill_ReportsDuplicates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spells.db")
	rows := writeFile(t, "legacy.json", `[
		{"id":"a","name":"Fireball","school":"Evocation","level":3,"description":"Boom"},
		{"id":"b","name":"Fireball","school":"Evocation","level":3,"description":"Boom","author":"copy"}
	]`)

	_, err := execute(t, NewImportCommand(testOptions("text")), "--db", db, "--legacy", rows)
	require.NoError(t, err)

	out, err := execute(t, NewBackfillCommand(testOptions("json")), "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"holder_id": "a"`)

	out, err = execute(t, NewVerifyCommand(testOptions("json")), "--db", db)
	require.Error(t, err)
	assert.Contains(t, out, `"duplicates"`)
}

func TestVerify_DetectsTampering(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spells.db")
	_, err := execute(t, NewImportCommand(testOptions("text")), "--db", db, writeFile(t, "fireball.json", fireballJSON))
	require.NoError(t, err)

	st, err := store.Open(db)
	require.NoError(t, err)
	records, err := st.ListAll(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NoError(t, st.UpdateHash(t.Context(), records[0].ID, "tampered"))
	require.NoError(t, st.Close())

	out, err := execute(t, NewVerifyCommand(testOptions("text")), "--db", db)
	require.Error(t, err)
	assert.Contains(t, out, "mismatch  "+records[0].ID+": stored tampered")
}

func TestBackfill_DatabaseNotFound(t *testing.T) {
	for _, cmd := range []string{"backfill", "verify"} {
		t.Run(cmd, func(t *testing.T) {
			c := NewBackfillCommand(testOptions("text"))
			if cmd == "verify" {
				c = NewVerifyCommand(testOptions("text"))
			}
			out, err := execute(t, c, "--db", "/nonexistent/spells.db")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "database not found")
		})
	}
}
