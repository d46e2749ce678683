package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCatalog(t, `{
		"entries": [
			{"canonical_name": "土豆", "aliases": ["马铃薯"], "purchase_url": "https://store.example/potato", "category": "vegetable"},
			{"canonical_name": "盐", "purchase_url": "https://store.example/salt"}
		]
	}`)

	entries, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "土豆", entries[0].CanonicalName)
	assert.Equal(t, []string{"马铃薯"}, entries[0].Aliases)
}

func TestLoadFileDuplicateCanonicalName(t *testing.T) {
	path := writeCatalog(t, `{
		"entries": [
			{"canonical_name": "盐", "purchase_url": "https://a"},
			{"canonical_name": "盐", "purchase_url": "https://b"}
		]
	}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileMissingCanonicalName(t *testing.T) {
	path := writeCatalog(t, `{"entries": [{"purchase_url": "https://a"}]}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}
