// Package importer reads block lists from the plain text format, CSV files,
// Excel workbooks and DXF drawings. CSV and Excel inputs use one row per
// point with automatic delimiter detection and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/BlockFit/internal/model"
)

// importLog is the sub-logger of the importer, tagged module=importer.
// It is derived on each call so it follows the logger the CLI configures.
func importLog() zerolog.Logger {
	return log.With().Str("module", "importer").Logger()
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Blocks   []model.Block
	Errors   []string
	Warnings []string
}

// HasErrors reports whether the import produced any error.
func (r ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessage joins all errors into a single line.
func (r ImportResult) ErrorMessage() string {
	return strings.Join(r.Errors, "; ")
}

// Import reads blocks from path, choosing the reader by file extension.
// Anything that is not CSV, Excel or DXF is read as the text format.
func Import(path string) ImportResult {
	var result ImportResult
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		result = ImportCSV(path)
	case ".xlsx", ".xlsm":
		result = ImportExcel(path)
	case ".dxf":
		result = ImportDXF(path)
	default:
		result = ImportText(path)
	}

	l := importLog()
	l.Debug().
		Str("path", path).
		Int("blocks", len(result.Blocks)).
		Int("errors", len(result.Errors)).
		Int("warnings", len(result.Warnings)).
		Msg("Imported blocks")
	return result
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name int
	X    int
	Y    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name": {"name", "block", "label", "id", "piece"},
	"x":    {"x", "col", "column"},
	"y":    {"y", "row", "line"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Name, X, Y and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, X: -1, Y: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "x":
					if mapping.X == -1 {
						mapping.X = i
					}
				case "y":
					if mapping.Y == -1 {
						mapping.Y = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, X: 1, Y: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseName checks that s is exactly one character and returns it.
func parseName(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("block name %q must be a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == model.Empty {
		return 0, fmt.Errorf("block name %q is reserved for empty cells", s)
	}
	return r, nil
}

// parseRow extracts one block point from a row using the given column mapping.
// Returns the block name, the point, and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (rune, model.Point, string) {
	name, err := parseName(getCell(row, mapping.Name))
	if err != nil {
		return 0, model.Point{}, fmt.Sprintf("%s: %v", rowLabel, err)
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return 0, model.Point{}, fmt.Sprintf("%s: Missing x value", rowLabel)
	}
	x, err := strconv.Atoi(xStr)
	if err != nil {
		return 0, model.Point{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr)
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return 0, model.Point{}, fmt.Sprintf("%s: Missing y value", rowLabel)
	}
	y, err := strconv.Atoi(yStr)
	if err != nil {
		return 0, model.Point{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr)
	}

	return name, model.Point{X: x, Y: y}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports blocks from a CSV file with one point per row.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports blocks from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports blocks from an Excel (.xlsx, .xlsm) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Rows sharing a name are collected into one block, in order of first
// appearance.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Name == -1 {
			missing = append(missing, "Name")
		}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if isTextRow(rows[0]) {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	set := newBlockSet()
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		name, p, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if set.add(name, p) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate point %v for block %c", rowLabel, p, name))
		}
	}

	if len(result.Errors) > 0 {
		return result
	}
	if set.empty() {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	blocks, err := set.build()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Blocks = blocks
	return result
}

// isTextRow reports whether a row looks like an unrecognised header: at
// least three cells and none of them an integer. A data row always has
// integer coordinates, so a malformed one is still parsed and reported.
func isTextRow(row []string) bool {
	if len(row) < 3 {
		return false
	}
	for _, cell := range row {
		if _, err := strconv.Atoi(strings.TrimSpace(cell)); err == nil {
			return false
		}
	}
	return true
}

// blockSet gathers points per block name while remembering the order in
// which names first appeared.
type blockSet struct {
	order  []rune
	points map[rune][]model.Point
	seen   map[rune]map[model.Point]bool
}

func newBlockSet() *blockSet {
	return &blockSet{
		points: make(map[rune][]model.Point),
		seen:   make(map[rune]map[model.Point]bool),
	}
}

func (s *blockSet) has(name rune) bool {
	_, ok := s.points[name]
	return ok
}

// add records p for the named block. It reports true when the point was
// already recorded for that block.
func (s *blockSet) add(name rune, p model.Point) bool {
	if !s.has(name) {
		s.order = append(s.order, name)
		s.points[name] = nil
		s.seen[name] = make(map[model.Point]bool)
	}
	if s.seen[name][p] {
		return true
	}
	s.seen[name][p] = true
	s.points[name] = append(s.points[name], p)
	return false
}

func (s *blockSet) empty() bool {
	return len(s.order) == 0
}

func (s *blockSet) build() ([]model.Block, error) {
	blocks := make([]model.Block, 0, len(s.order))
	for _, name := range s.order {
		b, err := model.NewBlock(name, s.points[name])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}
