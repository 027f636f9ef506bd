// Package tabular reads the flat CSV source the definition builder consumes.
// It validates the column layout and trims cells; interpreting the values
// (tag parsing, enum splitting, normalization) belongs to internal/build.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one source line associating an element with a message.
type Row struct {
	MsgType     string
	MsgName     string
	TagNumber   string
	ElementName string
	ElementKind string
	DataType    string
	Required    string
	EnumValues  string
}

var requiredColumns = []string{
	"msg_type",
	"msg_name",
	"tag_number",
	"element_name",
	"element_type",
	"data_type",
	"required",
}

// enum_values is the only optional column.
const enumColumn = "enum_values"

// ReadRows parses the whole source. A missing required column is fatal; the
// row values themselves are returned raw (trimmed) for the builder to judge.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("tabular: source is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("tabular: missing required column %q", name)
		}
	}
	enumIdx, hasEnum := index[enumColumn]

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tabular: read row %d: %w", len(rows)+2, err)
		}
		row := Row{
			MsgType:     cell(record, index["msg_type"]),
			MsgName:     cell(record, index["msg_name"]),
			TagNumber:   cell(record, index["tag_number"]),
			ElementName: cell(record, index["element_name"]),
			ElementKind: cell(record, index["element_type"]),
			DataType:    cell(record, index["data_type"]),
			Required:    cell(record, index["required"]),
		}
		if hasEnum {
			row.EnumValues = cell(record, enumIdx)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
