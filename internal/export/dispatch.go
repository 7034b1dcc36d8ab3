package export

import (
	"fmt"
	"log"
	"strings"
)

const (
	mimePDF   = "application/pdf"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeCSV   = "text/csv"
)

var formatExt = map[Format]string{
	FormatPDF:   ".pdf",
	FormatExcel: ".xlsx",
	FormatCSV:   ".csv",
}

// artifactName fixes the suggested filename's extension for the chosen
// format, synthesizing reporte_<ISO-date>.<ext> when none was suggested.
func artifactName(report *TabularReport, format Format) string {
	ext := formatExt[format]
	name := report.Filename
	if name == "" {
		return fmt.Sprintf("reporte_%s%s", reportNow().Format("2006-01-02"), ext)
	}
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	return name + ext
}

// FormatMIME returns the content type a format renders as, or "" for a
// format outside the closed set.
func FormatMIME(f Format) string {
	switch f {
	case FormatPDF:
		return mimePDF
	case FormatExcel:
		return mimeExcel
	case FormatCSV:
		return mimeCSV
	}
	return ""
}

// Export routes a report to exactly one emitter. An unrecognized format is
// a configuration error: it is logged and no artifact is produced — there
// is no silent fallback to a default format.
func Export(report *TabularReport, req Request) (*Artifact, error) {
	switch req.Format {
	case FormatPDF:
		data, err := renderPDF(report, req)
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: data, Filename: artifactName(report, FormatPDF), MIME: mimePDF}, nil
	case FormatExcel:
		data, err := renderExcel(report)
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: data, Filename: artifactName(report, FormatExcel), MIME: mimeExcel}, nil
	case FormatCSV:
		data, err := renderCSV(report)
		if err != nil {
			return nil, err
		}
		return &Artifact{Data: data, Filename: artifactName(report, FormatCSV), MIME: mimeCSV}, nil
	default:
		log.Printf("[Export] unsupported export format: %q", req.Format)
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
}
