package loader

import (
	// Go Internal Packages
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Local Packages
	errors "wiki-stream/errors"
	models "wiki-stream/models"
)

// missingValues are the cell values read as missing, they are indexed as "".
var missingValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-NaN": true, "-nan": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// FormatFromPath returns the file format implied by the extension of path, or "".
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FormatCSV
	case ".json":
		return models.FormatJSON
	}
	return ""
}

// ReadDocuments reads the documents of the file at path. An empty format is
// taken from the file extension.
func ReadDocuments(path, format string) ([]models.Document, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	if format != models.FormatCSV && format != models.FormatJSON {
		return nil, errors.UnsupportedFormatErr(format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(errors.Invalid, "cannot open data file", err)
	}
	defer f.Close()

	if format == models.FormatCSV {
		return ReadCSV(f)
	}
	return ReadJSON(f)
}

// ReadCSV reads one document per row, keyed by the header row. Integers,
// floats and booleans are typed, missing values become "".
func ReadCSV(r io.Reader) ([]models.Document, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.E(errors.Invalid, "cannot read csv header", err)
	}

	var docs []models.Document
	for row := 0; ; row++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(errors.Invalid, "cannot read csv", err)
		}

		source := make(map[string]interface{}, len(header))
		for i, column := range header {
			source[column] = csvValue(cells[i])
		}
		docs = append(docs, models.Document{ID: strconv.Itoa(row), Source: source})
	}
	return docs, nil
}

func csvValue(cell string) interface{} {
	if missingValues[cell] {
		return ""
	}
	if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return f
	}
	switch cell {
	case "true", "True", "TRUE":
		return true
	case "false", "False", "FALSE":
		return false
	}
	return cell
}

// ReadJSON accepts a list of objects, an object whose "data" key holds the
// documents, or a single object.
func ReadJSON(r io.Reader) ([]models.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var data interface{}
	if err := dec.Decode(&data); err != nil {
		return nil, errors.E(errors.Invalid, "cannot decode json", err)
	}

	var items []interface{}
	switch v := data.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		items = []interface{}{v}
		if inner, ok := v["data"]; ok {
			if list, ok := inner.([]interface{}); ok {
				items = list
			} else {
				items = []interface{}{inner}
			}
		}
	default:
		items = []interface{}{v}
	}

	docs := make([]models.Document, 0, len(items))
	for i, item := range items {
		source, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("document %d is not an object", i), nil)
		}
		docs = append(docs, models.Document{ID: strconv.Itoa(i), Source: source})
	}
	return docs, nil
}

// ReadMapping reads the index mappings from the JSON file at path. An empty
// path means no mapping.
func ReadMapping(path string) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.Invalid, "cannot read mapping file", err)
	}
	if !json.Valid(b) {
		return nil, errors.E(errors.Invalid, "mapping file is not valid json", nil)
	}
	return json.RawMessage(b), nil
}
