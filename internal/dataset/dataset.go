// Package dataset reads and writes the buyer directory JSON document.
//
// The document is a single pretty-printed array of BuyerRecord objects.
// Writes go through a temporary file in the same directory followed by a
// rename, so a crash mid-write never truncates the previous dataset.
package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/guttosm/graindesk/internal/domain/models"
)

const indent = "    "

// requiredFields must be present as non-empty strings on every record.
var requiredFields = []string{"id", "name"}

// Decode parses and validates a dataset document.
//
// Fails with:
//   - MalformedDatasetError: the document is not an array, or an element is not an object.
//   - MissingFieldError: an element lacks "id" or "name".
//   - DuplicateIdentifierError: two elements share an id.
func Decode(data []byte) ([]models.BuyerRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &MalformedDatasetError{Index: -1, Reason: "document is not a JSON array"}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &MalformedDatasetError{Index: -1, Reason: "invalid JSON", Err: err}
	}

	records := make([]models.BuyerRecord, 0, len(raw))
	seen := make(map[string]string, len(raw))
	for i, item := range raw {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(item, &probe); err != nil || probe == nil {
			return nil, &MalformedDatasetError{Index: i, Reason: "element is not an object", Err: err}
		}
		for _, field := range requiredFields {
			v, ok := probe[field]
			if !ok {
				return nil, &MissingFieldError{Index: i, Field: field}
			}
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return nil, &MalformedDatasetError{Index: i, Reason: fmt.Sprintf("field %q is not a string", field), Err: err}
			}
			if s == "" {
				return nil, &MissingFieldError{Index: i, Field: field}
			}
		}

		var rec models.BuyerRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, &MalformedDatasetError{Index: i, Reason: "invalid record", Err: err}
		}
		if existing, dup := seen[rec.ID]; dup {
			return nil, &DuplicateIdentifierError{ID: rec.ID, Name: rec.Name, Existing: existing}
		}
		seen[rec.ID] = rec.Name
		records = append(records, rec)
	}
	return records, nil
}

// Encode renders records as an indented JSON array with a trailing newline.
func Encode(records []models.BuyerRecord) ([]byte, error) {
	if records == nil {
		records = []models.BuyerRecord{}
	}
	out, err := json.MarshalIndent(records, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return append(out, '\n'), nil
}

// Load reads and decodes the dataset at path.
func Load(path string) ([]models.BuyerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Save encodes records and atomically replaces the file at path.
//
// Behavior:
//   - Creates the parent directory if needed.
//   - Writes to a temp file next to path, fsyncs, then renames over path.
//   - On any failure the temp file is removed and path is left untouched.
func Save(path string, records []models.BuyerRecord) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace dataset %s: %w", path, err)
	}
	return nil
}
