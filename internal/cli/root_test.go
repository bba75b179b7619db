package cli

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/jii-dashboard/internal/config"
	"github.com/godilite/jii-dashboard/internal/export"
	"github.com/godilite/jii-dashboard/internal/repository/repotest"
	"github.com/godilite/jii-dashboard/internal/service"
	"github.com/godilite/jii-dashboard/internal/textanalysis"
)

// run executes jiictl against a freshly seeded store.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rt := &Runtime{
		Config: &config.Config{DBDriver: "sqlite3", SentimentMode: "basic"},
		Open: func(ctx context.Context, cfg *config.Config) (*sql.DB, string, error) {
			return repotest.OpenSeeded(t), "sqlite3", nil
		},
	}
	root := NewRootCommand(rt)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, "export", "equipos_concurso")
		require.NoError(t, err)

		table, err := export.ReadCSV(strings.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, []string{"nombre", "estado_registro", "fecha_registro"}, table.Header)
		assert.Equal(t, 3, table.Len())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "promedios.csv")
		out, err := run(t, "export", "promedios", "-o", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		table, err := export.ReadCSV(f)
		require.NoError(t, err)
		assert.Equal(t, 3, table.Len())
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := run(t, "export", "secretos")
		assert.ErrorIs(t, err, service.ErrUnknownView)
	})

	t.Run("missing view", func(t *testing.T) {
		_, err := run(t, "export")
		assert.Error(t, err)
	})
}

func TestWordsCommand(t *testing.T) {
	out, err := run(t, "words", "11", "--top", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "WORD"))
	assert.Contains(t, out, "workshop")

	_, err = run(t, "words", "eleven")
	assert.ErrorContains(t, err, "positive integer")

	_, err = run(t, "words", "1")
	assert.ErrorIs(t, err, service.ErrUnknownQuestion)
}

func TestSentimentCommand(t *testing.T) {
	out, err := run(t, "sentiment", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: basic, responses: 2")
	assert.Contains(t, out, "Positive")
	assert.Contains(t, out, "Negative")
	assert.Contains(t, out, "Ana López")

	_, err = run(t, "sentiment", "11", "--mode", "lexicon")
	assert.ErrorIs(t, err, textanalysis.ErrAnalyzerUnavailable)

	_, err = run(t, "sentiment", "11", "--mode", "oracle")
	assert.ErrorIs(t, err, textanalysis.ErrUnknownMode)
}

func TestRatingsCommand(t *testing.T) {
	out, err := run(t, "ratings")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "17 "))
	assert.True(t, strings.HasPrefix(lines[2], "1 "))
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "Workshop"))
}

func TestOpenFromConfig(t *testing.T) {
	db, driver, err := OpenFromConfig(context.Background(), &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "events.db"),
	})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "sqlite3", driver)

	_, _, err = OpenFromConfig(context.Background(), &config.Config{DBDriver: "mysql", DBPath: "x"})
	assert.Error(t, err)
}
