package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const fireballYAML = `name: Fireball
school: Evocation
level: 3
description: Boom
is_cantrip: 0
is_quest_spell: 0
`

const fireballJSON = `{"name":"Fireball","tradition":"ARCANE","school":"Evocation","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`

const lightningJSON = `{"name":"Lightning Bolt","school":"Evocation","level":3,"description":"Zap","is_cantrip":0,"is_quest_spell":0}`

const invalidJSON = `{"name":"Fireball","school":"Evocation","level":3,"description":"Boom","is_cantrip":1,"is_quest_spell":0}`

const conflictJSON = `{"name":"Fireball","school":"Evocation","sphere":"Healing","level":3,"description":"Boom","is_cantrip":0,"is_quest_spell":0}`

const legacyYAML = `- id: legacy-1
  name: Fireball
  school: Evocation
  level: 3
  components: V, S, M
  range: 10 yards + 10 yards/level
  description: Boom
- id: legacy-2
  name: Bless
  sphere: All
  level: 1
  description: Blessing.
`

// writeFile writes content to name inside a fresh temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testOptions returns root options with logging discarded.
func testOptions(format string) *RootOptions {
	return &RootOptions{
		Format: format,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
