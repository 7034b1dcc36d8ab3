package export

import (
	"fmt"
	"strconv"
	"strings"
)

// cellString renders a cell for text output. Formatting applied by row
// preparation (currency strings, dates) is preserved verbatim; bare numbers
// use their default decimal representation.
func cellString(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}

// renderCSV emits a comma-delimited UTF-8 document: header line then one
// line per row, joined by \n. A cell containing a comma is wrapped in
// double quotes; embedded quotes and newlines inside cells are a known
// limitation and are not escaped. encoding/csv is deliberately not used:
// its RFC 4180 quote doubling diverges from this contract.
func renderCSV(report *TabularReport) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(report.Rows)+1)
	lines = append(lines, csvLine(toCells(report.Headers)))
	for _, row := range report.Rows {
		lines = append(lines, csvLine(row))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func csvLine(row []interface{}) string {
	fields := make([]string, len(row))
	for i, cell := range row {
		s := cellString(cell)
		if strings.Contains(s, ",") {
			s = `"` + s + `"`
		}
		fields[i] = s
	}
	return strings.Join(fields, ",")
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
