package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCommand(file, dbPath string, dryRun bool) (*ImportJSONCommand, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &ImportJSONCommand{
		FilePath:     file,
		DatabasePath: dbPath,
		DryRun:       dryRun,
		Verbose:      true,
		Out:          out,
	}, out
}

func listBooks(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := database.NewDatabaseWithLogLevel(dbPath, logger.Silent)
	require.NoError(t, err)
	defer db.Close()

	all, err := books.NewRepository(db.DB).GetAll(context.Background())
	require.NoError(t, err)
	titles := make([]string, 0, len(all))
	for _, b := range all {
		titles = append(titles, b.Title)
	}
	return titles
}

func TestImportJSONCommand_ParseFlags(t *testing.T) {
	cmd := NewImportJSONCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-file", "in.json", "-db", "out.db", "-dry-run"}))

	assert.Equal(t, "in.json", cmd.FilePath)
	assert.Equal(t, "out.db", cmd.DatabasePath)
	assert.True(t, cmd.DryRun)

	assert.Error(t, NewImportJSONCommand().ParseFlags(nil))
}

func TestImportJSONCommand_Run(t *testing.T) {
	file := writeFile(t, `[
		{"title":"Dune","author":"Herbert","year":1965},
		{"title":"Dune Messiah","author":"Herbert"}
	]`)
	dbPath := filepath.Join(t.TempDir(), "books.db")

	cmd, out := newTestCommand(file, dbPath, false)
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Books saved: 2/2")
	assert.Contains(t, out.String(), `#1 "Dune" by Herbert (1965)`)
	assert.Equal(t, []string{"Dune", "Dune Messiah"}, listBooks(t, dbPath))
}

func TestImportJSONCommand_DryRunWritesNothing(t *testing.T) {
	file := writeFile(t, `[{"title":"Emma","author":"Austen"}]`)
	dbPath := filepath.Join(t.TempDir(), "books.db")

	cmd, out := newTestCommand(file, dbPath, true)
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Valid records: 1/1")
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestImportJSONCommand_InvalidRecordsAreSkipped(t *testing.T) {
	file := writeFile(t, `[
		{"title":"Dune","author":"Herbert"},
		{"title":"","author":"Nobody"},
		{"author":"Anonymous"}
	]`)
	dbPath := filepath.Join(t.TempDir(), "books.db")

	cmd, out := newTestCommand(file, dbPath, false)
	err := cmd.Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")
	assert.Contains(t, out.String(), "record 2")
	assert.Contains(t, out.String(), "record 3")
	assert.Equal(t, []string{"Dune"}, listBooks(t, dbPath))
}

func TestImportJSONCommand_BadFile(t *testing.T) {
	cmd, _ := newTestCommand(writeFile(t, `{"title":"not an array"}`), filepath.Join(t.TempDir(), "books.db"), true)
	assert.Error(t, cmd.Run())

	cmd, _ = newTestCommand(filepath.Join(t.TempDir(), "missing.json"), "", true)
	assert.Error(t, cmd.Run())
}
