// Package recordfile reads extracted test records from JSON or YAML files.
package recordfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gostatcheck/domain/record"
	"gostatcheck/internal/errors"
)

// Format is the encoding of a record file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.UnsupportedFile(path)
	}
}

// document is the wrapped form: {"records": [...]}.
type document struct {
	Records []record.TestRecord `json:"records" yaml:"records"`
}

// Reader reads the records of one file. It implements ports.RecordSource.
type Reader struct {
	path   string
	format Format
}

// NewReader creates a reader for path; the format comes from its extension.
func NewReader(path string) (*Reader, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return &Reader{path: path, format: format}, nil
}

// Path returns the file the reader reads.
func (r *Reader) Path() string { return r.path }

// ReadRecords loads the file. Records are returned in file order.
func (r *Reader) ReadRecords(ctx context.Context) ([]record.TestRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.NotFound(r.path), "failed to read records")
		}
		return nil, errors.IOError(r.path, err)
	}
	records, err := Decode(data, r.format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", r.path)
	}
	return records, nil
}

// Decode parses either a bare list of records or a document with a
// "records" key.
func Decode(data []byte, format Format) ([]record.TestRecord, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unknown record format %q", format))
	}
}

func decodeJSON(data []byte) ([]record.TestRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '[' {
		var records []record.TestRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return records, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return doc.Records, nil
}

func decodeYAML(data []byte) ([]record.TestRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.MappingNode {
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		return doc.Records, nil
	}
	var records []record.TestRecord
	if err := node.Decode(&records); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return records, nil
}
