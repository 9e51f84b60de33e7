package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDirectoryTextAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "handbook.txt", "The expense policy caps meals at $50.\n")
	writeFile(t, dir, "notes.md", "# Quarterly goals\n\nShip the new campaign.")
	writeFile(t, dir, "ignore.pdf", "binary junk")
	writeFile(t, dir, "empty.txt", "   \n")

	docs, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)

	bySource := make(map[string]Document)
	for _, doc := range docs {
		bySource[doc.Source] = doc
	}
	assert.Equal(t, "The expense policy caps meals at $50.", bySource["handbook.txt"].Content)
	assert.Contains(t, bySource["notes.md"].Content, "Quarterly goals")
}

func TestLoadDirectoryCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "salaries.csv", "name,department,salary\nAlice,finance,90000\nBob,marketing,85000\n")

	docs, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Len(t, docs, 2)

	// One document per data row, header names prefixed, row number in source.
	assert.Equal(t, "salaries.csv:row 2", docs[0].Source)
	assert.Contains(t, docs[0].Content, "name: Alice")
	assert.Contains(t, docs[0].Content, "department: finance")
	assert.Contains(t, docs[0].Content, "salary: 90000")
	assert.Equal(t, "salaries.csv:row 3", docs[1].Source)
	assert.Contains(t, docs[1].Content, "name: Bob")
}

func TestLoadDirectoryCSVRaggedRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ragged.csv", "a,b\n1,2,3\n")

	docs, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Contains(t, docs[0].Content, "a: 1")
	assert.Contains(t, docs[0].Content, "b: 2")
	assert.Contains(t, docs[0].Content, "column_3: 3")
}

func TestLoadDirectoryCSVHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "header.csv", "a,b,c\n")

	docs, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadDirectorySubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "archive")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "old.txt", "archived note")

	docs, err := LoadDirectory(dir)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, filepath.Join("archive", "old.txt"), docs[0].Source)
}

func TestLoadDirectoryMissing(t *testing.T) {
	_, err := LoadDirectory(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
