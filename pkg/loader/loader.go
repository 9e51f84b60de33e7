package loader

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Document is one raw source document before splitting. Source records where
// it came from; for CSV rows that includes the row number.
type Document struct {
	Source  string
	Content string
}

// LoadDirectory reads every supported file (.txt, .md, .csv) directly under
// dir and returns the extracted documents. Unsupported extensions are
// skipped. Text and markdown files become one document each; each CSV row
// becomes its own document, rendered as "header: value" lines so tabular
// facts survive chunking.
func LoadDirectory(dir string) ([]Document, error) {
	var docs []Document

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			text := strings.TrimSpace(string(content))
			if text == "" {
				return nil
			}
			docs = append(docs, Document{Source: rel, Content: text})
		case ".csv":
			rows, err := loadCSV(path, rel)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			docs = append(docs, rows...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func loadCSV(path, rel string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil // header only, or empty
	}

	header := records[0]
	docs := make([]Document, 0, len(records)-1)
	for i, row := range records[1:] {
		var b strings.Builder
		for j, field := range row {
			name := fmt.Sprintf("column_%d", j+1)
			if j < len(header) {
				name = strings.TrimSpace(header[j])
			}
			fmt.Fprintf(&b, "%s: %s\n", name, strings.TrimSpace(field))
		}
		docs = append(docs, Document{
			Source:  fmt.Sprintf("%s:row %d", rel, i+2),
			Content: strings.TrimSpace(b.String()),
		})
	}
	return docs, nil
}
