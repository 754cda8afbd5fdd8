package recording

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseCSV reads a wide export: a header row of signal names and one row per
// frame. An empty cell ends its column, so columns may differ in length.
func parseCSV(data []byte, schema *Schema) (map[string][]float64, []string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty csv")
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}

	var ignored []string
	keep := make([]bool, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if _, ok := schema.Knows(name); ok {
			keep[i] = true
			continue
		}
		if name != "" {
			ignored = append(ignored, name)
		}
	}

	cols := make(map[string][]float64)
	ended := make([]bool, len(header))
	for row := 2; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv row %d: %w", row, err)
		}
		for i, name := range header {
			if !keep[i] || ended[i] {
				continue
			}
			cell := ""
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			if cell == "" {
				ended[i] = true
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %s: %w", row, name, err)
			}
			cols[name] = append(cols[name], v)
		}
	}
	return cols, ignored, nil
}
