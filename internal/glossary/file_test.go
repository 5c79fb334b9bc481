package glossary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		srcLang  string
		dstLang  string
		expected string
	}{
		{"simple codes", "en", "zh", "glossary.en-zh.json"},
		{"BCP47 tags", "zh-CN", "en-US", "glossary.zh-en.json"},
		{"mixed", "en", "pt-BR", "glossary.en-pt.json"},
		{"unparseable kept", "en", "??", "glossary.en-??.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Filename(tt.srcLang, tt.dstLang))
		})
	}
}

func TestParseFilename(t *testing.T) {
	src, dst, err := ParseFilename(FilePath("/data", "en-GB", "de"))
	require.NoError(t, err)
	assert.Equal(t, "en", src)
	assert.Equal(t, "de", dst)

	for _, name := range []string{"terms.json", "glossary.en.json", "glossary.-de.json", "glossary.en-de.yaml"} {
		_, _, err := ParseFilename(name)
		assert.Error(t, err, name)
	}
}

func TestFindInAncestors_ClosestWins(t *testing.T) {
	root := t.TempDir()
	child := filepath.Join(root, "season1", "episode1")
	require.NoError(t, os.MkdirAll(child, 0755))

	rootPath := FilePath(root, "en", "de")
	require.NoError(t, os.WriteFile(rootPath, []byte(`{"a":"b"}`), 0644))
	assert.Equal(t, rootPath, FindInAncestors(child, "en", "de"))

	childPath := FilePath(filepath.Dir(child), "en", "de")
	require.NoError(t, os.WriteFile(childPath, []byte(`{"c":"d"}`), 0644))
	assert.Equal(t, childPath, FindInAncestors(child, "en", "de"))

	assert.Empty(t, FindInAncestors(child, "en", "ja"))
}

func TestSaveAndLoad(t *testing.T) {
	path := FilePath(t.TempDir(), "en", "de")
	entries := map[string]string{"hello": "hallo", "world": "Welt"}

	require.NoError(t, Save(path, entries))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)

	req, err := LoadCreate(path, "Greetings")
	require.NoError(t, err)
	assert.Equal(t, rask.GlossaryCreate{Name: "Greetings", SrcLang: "en", DstLang: "de", Entries: entries}, req)
	_, err = req.Validate()
	assert.NoError(t, err)
}

func TestSave_RejectsInvalidEntries(t *testing.T) {
	path := FilePath(t.TempDir(), "en", "de")

	err := Save(path, map[string]string{" hello": "hallo"})
	_, ok := rask.AsValidationError(err)
	assert.True(t, ok)
	assert.NoFileExists(t, path)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "glossary.en-de.json")
	require.NoError(t, os.WriteFile(bad, []byte(`["not","a","map"]`), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(bad, []byte(`{"tab\tkey":"x"}`), 0644))
	_, err = Load(bad)
	_, ok := rask.AsValidationError(err)
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(bad, []byte(`null`), 0644))
	entries, err := Load(bad)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
