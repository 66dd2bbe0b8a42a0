// Package importer reads vocabulary spreadsheets (xlsx or csv) into rows
// ready to become vocabulary items.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Row is one parsed vocabulary entry.
type Row struct {
	Line             int
	Term             string
	Translation      string
	Definition       string
	ExampleSentence  string
	Pronunciation    string
	PhoneticSpelling string
	PartOfSpeech     string
}

// Result holds the parsed rows and the problems found on skipped lines.
type Result struct {
	Rows   []Row
	Errors []string
}

const (
	colTerm = iota
	colTranslation
	colDefinition
	colExample
	colPronunciation
	colPhonetic
	colPartOfSpeech
	numColumns
)

var headerAliases = map[string]int{
	"term":              colTerm,
	"word":              colTerm,
	"translation":       colTranslation,
	"definition":        colDefinition,
	"description":       colDefinition,
	"meaning":           colDefinition,
	"example":           colExample,
	"example_sentence":  colExample,
	"examples":          colExample,
	"pronunciation":     colPronunciation,
	"phonetic":          colPhonetic,
	"phonetic_spelling": colPhonetic,
	"part_of_speech":    colPartOfSpeech,
	"pos":               colPartOfSpeech,
}

// Supported reports whether the file name has an importable extension.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// Parse reads r as xlsx or csv depending on the file name extension.
func Parse(r io.Reader, filename string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseCSV(r)
	case ".xlsx":
		return parseExcel(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

func parseExcel(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Result{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return parseRecords(rows), nil
}

func parseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return parseRecords(records), nil
}

// parseRecords maps columns by header names when the first record has a
// term column, and falls back to the fixed order term, translation,
// definition, example, pronunciation, phonetic, part of speech otherwise.
func parseRecords(records [][]string) *Result {
	res := &Result{Rows: []Row{}, Errors: []string{}}
	if len(records) == 0 {
		return res
	}

	layout, hasHeader := headerLayout(records[0])
	start := 0
	if hasHeader {
		start = 1
	}

	for i := start; i < len(records); i++ {
		record := records[i]
		if blank(record) {
			continue
		}
		var cells [numColumns]string
		for idx, col := range layout {
			if col >= 0 && idx < len(record) {
				cells[col] = strings.TrimSpace(record[idx])
			}
		}
		line := i + 1
		if cells[colTerm] == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: term cannot be empty", line))
			continue
		}
		res.Rows = append(res.Rows, Row{
			Line:             line,
			Term:             cells[colTerm],
			Translation:      cells[colTranslation],
			Definition:       cells[colDefinition],
			ExampleSentence:  cells[colExample],
			Pronunciation:    cells[colPronunciation],
			PhoneticSpelling: cells[colPhonetic],
			PartOfSpeech:     strings.ToLower(cells[colPartOfSpeech]),
		})
	}
	return res
}

func headerLayout(first []string) ([]int, bool) {
	layout := make([]int, len(first))
	hasTerm := false
	for i, cell := range first {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		col, ok := headerAliases[key]
		if !ok {
			layout[i] = -1
			continue
		}
		layout[i] = col
		if col == colTerm {
			hasTerm = true
		}
	}
	if hasTerm {
		return layout, true
	}

	width := max(len(first), int(numColumns))
	layout = make([]int, width)
	for i := range layout {
		if i < int(numColumns) {
			layout[i] = i
		} else {
			layout[i] = -1
		}
	}
	return layout, false
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
