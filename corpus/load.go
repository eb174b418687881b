package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type jsonDocument struct {
	Text   string    `json:"text"`
	Label  string    `json:"label,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
}

// LoadDocuments reads a document collection from a CSV or JSON file.
//
// CSV files need a header row with a "text" column; a "label" column is
// picked up when present. JSON files hold either an array of strings or an
// array of objects with "text" and optional "label" and "vector" fields.
func LoadDocuments(path string) ([]Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return loadCSV(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

func loadCSV(path string) ([]Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	textColumn := -1
	labelColumn := -1
	for columnIndex, header := range records[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(header), "text"):
			textColumn = columnIndex
		case strings.EqualFold(strings.TrimSpace(header), "label"):
			labelColumn = columnIndex
		}
	}

	if textColumn == -1 {
		return nil, fmt.Errorf("CSV missing 'text' column header")
	}

	documents := make([]Document, 0, len(records)-1)
	for _, row := range records[1:] {
		if textColumn >= len(row) || row[textColumn] == "" {
			continue
		}
		document := Document{Text: row[textColumn]}
		if labelColumn != -1 && labelColumn < len(row) {
			document.Label = row[labelColumn]
		}
		documents = append(documents, document)
	}

	return documents, nil
}

func loadJSON(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading JSON file: %w", err)
	}

	var stringArray []string
	if err := json.Unmarshal(data, &stringArray); err == nil {
		documents := make([]Document, len(stringArray))
		for documentIndex, text := range stringArray {
			documents[documentIndex] = Document{Text: text}
		}
		return documents, nil
	}

	var objectArray []jsonDocument
	if err := json.Unmarshal(data, &objectArray); err != nil {
		return nil, fmt.Errorf("parsing JSON: expected array of strings or objects with 'text' field: %w", err)
	}

	documents := make([]Document, 0, len(objectArray))
	for objectIndex, object := range objectArray {
		if object.Text == "" {
			return nil, fmt.Errorf("entry %d missing text field", objectIndex)
		}
		documents = append(documents, Document{
			Text:   object.Text,
			Label:  object.Label,
			Vector: object.Vector,
		})
	}

	return documents, nil
}
