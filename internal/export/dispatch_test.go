package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *TabularReport {
	return &TabularReport{
		Title:    "Cronograma de Pagos",
		Subtitle: "Reporte generado el 15 jun 2024, 2:30 p. m.",
		Filename: "cronograma_2024-06-15.pdf",
		Headers:  []string{"N° Cuota", "Producto", "Fecha Vencimiento", "Valor Cuota", "Estado", "Crédito ID"},
		Rows: [][]interface{}{
			{3, "e-bike", "15 jun 2024", "$ 250.000", "Pagada", 7},
			{4, "e-bike", "15 jul 2024", "$ 250.000", "Pendiente", 7},
		},
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := Export(sampleReport(), Request{Format: "docx"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Export(sampleReport(), Request{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportPDF(t *testing.T) {
	artifact, err := Export(sampleReport(), Request{Format: FormatPDF})
	require.NoError(t, err)
	require.Equal(t, "cronograma_2024-06-15.pdf", artifact.Filename)
	require.Equal(t, "application/pdf", artifact.MIME)
	require.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF")))
}

func TestExportPDFLandscapeLetter(t *testing.T) {
	artifact, err := Export(sampleReport(), Request{
		Format:      FormatPDF,
		Orientation: Landscape,
		PageSize:    PageLetter,
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF")))
}

func TestExportExcel(t *testing.T) {
	artifact, err := Export(sampleReport(), Request{Format: FormatExcel})
	require.NoError(t, err)
	require.Equal(t, "cronograma_2024-06-15.xlsx", artifact.Filename)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		artifact.MIME)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Cronograma de Pagos"}, f.GetSheetList())

	got, err := f.GetCellValue("Cronograma de Pagos", "A1")
	require.NoError(t, err)
	require.Equal(t, "N° Cuota", got)

	got, err = f.GetCellValue("Cronograma de Pagos", "D2")
	require.NoError(t, err)
	require.Equal(t, "$ 250.000", got)
}

func TestExportExcelDefaultSheetName(t *testing.T) {
	report := sampleReport()
	report.Title = ""
	artifact, err := Export(report, Request{Format: FormatExcel})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{"Reporte"}, f.GetSheetList())
}

func TestExportCSVFilenameExtension(t *testing.T) {
	artifact, err := Export(sampleReport(), Request{Format: FormatCSV})
	require.NoError(t, err)
	require.Equal(t, "cronograma_2024-06-15.csv", artifact.Filename)
	require.Equal(t, "text/csv", artifact.MIME)
}

func TestFormatMIME(t *testing.T) {
	require.Equal(t, "application/pdf", FormatMIME(FormatPDF))
	require.Equal(t, "text/csv", FormatMIME(FormatCSV))
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FormatMIME(FormatExcel))
	require.Equal(t, "", FormatMIME("docx"))
}

func TestArtifactNameSynthesized(t *testing.T) {
	report := sampleReport()
	report.Filename = ""
	name := artifactName(report, FormatCSV)
	require.Regexp(t, `^reporte_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
