package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runHistory(t *testing.T, configPath string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"history", "--config", configPath})

	err := root.Execute()
	return out.String(), err
}

func TestHistory_DatabaseDisabled(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[database]\nenabled = false\n")

	_, err := runHistory(t, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is disabled")
}

func TestHistory_PrintsStoredTotals(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "studio.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	_, err = db.Exec(finishedRow)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	path := writeConfig(t, dir, `
[database]
enabled = true
driver = "sqlite"
path = "`+filepath.ToSlash(dbPath)+`"
`)

	out, err := runHistory(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "finished sessions: 1")
	assert.Contains(t, out, "today:  0 sessions, revenue 0.00")
	assert.Contains(t, out, "month:  0 sessions, revenue 0.00")
}
