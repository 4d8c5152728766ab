package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Run("flattens rows into column: value lines", func(t *testing.T) {
		path := writeCSV(t, "title,genre,rating\nAkira,Sci-Fi,8.0\nMonster,Thriller,8.8\n")

		docs, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "title: Akira\ngenre: Sci-Fi\nrating: 8.0", docs[0])
		assert.Equal(t, "title: Monster\ngenre: Thriller\nrating: 8.8", docs[1])
	})

	t.Run("skips empty cells", func(t *testing.T) {
		path := writeCSV(t, "title,genre,rating\nAkira,,8.0\n")

		docs, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "title: Akira\nrating: 8.0", docs[0])
	})

	t.Run("skips fully empty rows", func(t *testing.T) {
		path := writeCSV(t, "title,genre\nAkira,Sci-Fi\n,\n")

		docs, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("header only yields no documents", func(t *testing.T) {
		path := writeCSV(t, "title,genre,rating\n")

		docs, err := LoadCatalog(path)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")

		_, err := LoadCatalog(path)
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("quoted fields with commas", func(t *testing.T) {
		path := writeCSV(t, "title,genre\nAkira,\"Action, Sci-Fi\"\n")

		docs, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "title: Akira\ngenre: Action, Sci-Fi", docs[0])
	})
}
