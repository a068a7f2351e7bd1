// Package csvutil parses student roster CSV files into the raw records the
// bulk validator consumes.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dalemusser/eduhub/internal/app/bulk"
)

// Column layout: displayName, email, studentNumber, notes. The last two are
// optional; shorter rows leave them empty and the validator flags whatever
// is actually missing.
const maxColumns = 4

// ParseStudentsCSV reads a roster file into raw student records. A header
// row is detected and skipped; a CSV syntax error rejects the whole file.
func ParseStudentsCSV(r io.Reader) ([]bulk.RawItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil // empty file
	}
	if err != nil {
		return nil, err
	}

	// Handle BOM in first cell
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}

	var rows [][]string
	if !isHeaderRow(first) {
		rows = append(rows, first)
	}

	line := 1
	for {
		rec, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isEmptyRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	items := make([]bulk.RawItem, 0, len(rows))
	for _, rec := range rows {
		if isEmptyRow(rec) {
			continue
		}
		items = append(items, rowToItem(rec))
	}
	return items, nil
}

func rowToItem(rec []string) bulk.RawItem {
	fields := make([]string, maxColumns)
	for i := 0; i < len(rec) && i < maxColumns; i++ {
		fields[i] = strings.TrimSpace(rec[i])
	}
	return bulk.RawItem{
		"displayName":   fields[0],
		"email":         fields[1],
		"studentNumber": fields[2],
		"notes":         fields[3],
	}
}

// isHeaderRow reports whether the first row looks like column names rather
// than data.
func isHeaderRow(rec []string) bool {
	for _, cell := range rec {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "displayname", "display_name", "display name", "name", "email", "studentnumber", "student_number", "notes":
			return true
		}
	}
	return false
}

func isEmptyRow(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
