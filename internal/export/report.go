package export

import (
	"errors"
	"fmt"
)

// Format selects the output document type.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
	FormatCSV   Format = "csv"
)

// Orientation and PageSize apply to PDF output only; other emitters ignore
// them.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

type PageSize string

const (
	PageA4     PageSize = "a4"
	PageLetter PageSize = "letter"
)

// TabularReport is the normalized structure every emitter consumes. Cells
// hold strings or numbers only; preparation flattens nested domain fields
// before construction. A report is built fresh per export and never reused.
type TabularReport struct {
	Headers  []string
	Rows     [][]interface{}
	Title    string
	Subtitle string
	Filename string
}

// Validate rejects ragged rows. A mismatched row is a caller bug, not a
// recoverable condition.
func (r *TabularReport) Validate() error {
	for i, row := range r.Rows {
		if len(row) != len(r.Headers) {
			return fmt.Errorf("report row %d has %d cells, want %d", i, len(row), len(r.Headers))
		}
	}
	return nil
}

// Request describes one export invocation.
type Request struct {
	Format        Format      `json:"format"`
	Orientation   Orientation `json:"orientation,omitempty"`
	PageSize      PageSize    `json:"pageSize,omitempty"`
	IncludeCharts bool        `json:"includeCharts,omitempty"`
}

// Artifact is a finished document ready to download.
type Artifact struct {
	Data     []byte
	Filename string
	MIME     string
}

// ErrUnsupportedFormat is returned by the dispatcher for a format outside
// the closed pdf/excel/csv set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// RowError identifies a malformed input row: a required field absent with
// no defined fallback, or an unparseable amount.
type RowError struct {
	Row   int
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: field %s: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: missing required field %s", e.Row, e.Field)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
