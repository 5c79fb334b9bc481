// Package glossary stores glossary entries as local JSON files named after
// their language pair.
package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/MimeLyc/rask-sdk-go/internal/validate"
	"github.com/MimeLyc/rask-sdk-go/pkg/rask"
)

const (
	filePrefix = "glossary."
	fileSuffix = ".json"
)

// Filename returns the glossary filename for the given source and target languages.
// Uses 2-letter language base codes (e.g., "en", "zh").
func Filename(srcLang, dstLang string) string {
	return filePrefix + normalizeLanguageCode(srcLang) + "-" + normalizeLanguageCode(dstLang) + fileSuffix
}

// FilePath returns the full path to the glossary file in the given directory.
func FilePath(dir, srcLang, dstLang string) string {
	return filepath.Join(dir, Filename(srcLang, dstLang))
}

// ParseFilename extracts the language pair from a glossary filename.
func ParseFilename(path string) (srcLang, dstLang string, err error) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", "", fmt.Errorf("not a glossary file: %s", name)
	}

	pair := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	srcLang, dstLang, ok := strings.Cut(pair, "-")
	if !ok || srcLang == "" || dstLang == "" {
		return "", "", fmt.Errorf("glossary file %s does not name a language pair", name)
	}
	return srcLang, dstLang, nil
}

// FindInAncestors walks up from startDir looking for a glossary file.
// Returns the first found path or empty string.
func FindInAncestors(startDir, srcLang, dstLang string) string {
	filename := Filename(srcLang, dstLang)
	currentDir := startDir

	for {
		candidate := filepath.Join(currentDir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load reads and checks glossary entries from a JSON file.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if entries == nil {
		entries = map[string]string{}
	}

	if _, err := validate.Entries(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadCreate reads a glossary file into a create request, taking the
// languages from its filename.
func LoadCreate(path, name string) (rask.GlossaryCreate, error) {
	srcLang, dstLang, err := ParseFilename(path)
	if err != nil {
		return rask.GlossaryCreate{}, err
	}

	entries, err := Load(path)
	if err != nil {
		return rask.GlossaryCreate{}, err
	}

	return rask.GlossaryCreate{
		Name:    name,
		SrcLang: srcLang,
		DstLang: dstLang,
		Entries: entries,
	}, nil
}

// Save writes glossary entries to a JSON file with indentation.
func Save(path string, entries map[string]string) error {
	if _, err := validate.Entries(entries); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// normalizeLanguageCode parses a language string and returns its 2-letter base code.
func normalizeLanguageCode(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}
