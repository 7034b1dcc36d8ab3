package export

import (
	"fmt"
	"time"

	"RodaClientPortal/internal/creditapi"
)

// Row preparation: one pure function per domain. Input records are already
// fetched and already filtered by the caller; nothing here touches the
// network or reorders rows. Fields that may arrive at two nesting depths
// are resolved here, enriched sub-record first, flat field as fallback,
// "N/A" when both are absent.

const placeholderNA = "N/A"

func reportFilename(domain string, now time.Time) string {
	// The suggested name always carries .pdf; the dispatcher swaps the
	// real extension for non-PDF formats.
	return fmt.Sprintf("%s_%s.pdf", domain, now.Format("2006-01-02"))
}

func reportSubtitle(now time.Time) string {
	return "Reporte generado el " + FormatDateTime(now)
}

// PrepareSchedule normalizes schedule entries into a tabular report.
func PrepareSchedule(entries []creditapi.ScheduleEntry) (*TabularReport, error) {
	now := reportNow()
	report := &TabularReport{
		Title:    "Cronograma de Pagos",
		Subtitle: reportSubtitle(now),
		Filename: reportFilename("cronograma", now),
		Headers: []string{
			"N° Cuota",
			"Producto",
			"Fecha Vencimiento",
			"Valor Cuota",
			"Estado",
			"Crédito ID",
		},
		Rows: make([][]interface{}, 0, len(entries)),
	}

	for i, entry := range entries {
		producto := interface{}(placeholderNA)
		if entry.CreditInfo != nil && entry.CreditInfo.Producto != "" {
			producto = entry.CreditInfo.Producto
		} else if entry.Producto != "" {
			producto = entry.Producto
		}

		if entry.FechaVencimiento == "" {
			return nil, &RowError{Row: i, Field: "fecha_vencimiento"}
		}
		fecha, err := FormatDate(entry.FechaVencimiento)
		if err != nil {
			return nil, &RowError{Row: i, Field: "fecha_vencimiento", Err: err}
		}

		if entry.ValorCuota == "" {
			return nil, &RowError{Row: i, Field: "valor_cuota"}
		}
		valor, err := ParseAmount(entry.ValorCuota)
		if err != nil {
			return nil, &RowError{Row: i, Field: "valor_cuota", Err: err}
		}

		if entry.Estado == "" {
			return nil, &RowError{Row: i, Field: "estado"}
		}

		creditoID := interface{}(placeholderNA)
		if entry.CreditInfo != nil && entry.CreditInfo.CreditoID != 0 {
			creditoID = entry.CreditInfo.CreditoID
		} else if entry.Credito != 0 {
			creditoID = entry.Credito
		}

		report.Rows = append(report.Rows, []interface{}{
			entry.NumCuota,
			producto,
			fecha,
			FormatCurrency(valor),
			Capitalize(entry.Estado),
			creditoID,
		})
	}
	return report, nil
}

// PrepareCredits normalizes credit records into a tabular report.
func PrepareCredits(credits []creditapi.Credit) (*TabularReport, error) {
	now := reportNow()
	report := &TabularReport{
		Title:    "Reporte de Créditos",
		Subtitle: reportSubtitle(now),
		Filename: reportFilename("creditos", now),
		Headers: []string{
			"Crédito ID",
			"Producto",
			"Inversión",
			"Cuotas Totales",
			"TEA",
			"Fecha Desembolso",
			"Estado",
		},
		Rows: make([][]interface{}, 0, len(credits)),
	}

	for i, credit := range credits {
		if credit.Producto == "" {
			return nil, &RowError{Row: i, Field: "producto"}
		}
		if credit.Inversion == "" {
			return nil, &RowError{Row: i, Field: "inversion"}
		}
		inversion, err := ParseAmount(credit.Inversion)
		if err != nil {
			return nil, &RowError{Row: i, Field: "inversion", Err: err}
		}

		if credit.TEA == "" {
			return nil, &RowError{Row: i, Field: "tea"}
		}
		tea, err := ParseAmount(credit.TEA)
		if err != nil {
			return nil, &RowError{Row: i, Field: "tea", Err: err}
		}

		if credit.FechaDesembolso == "" {
			return nil, &RowError{Row: i, Field: "fecha_desembolso"}
		}
		fecha, err := FormatDate(credit.FechaDesembolso)
		if err != nil {
			return nil, &RowError{Row: i, Field: "fecha_desembolso", Err: err}
		}

		if credit.Estado == "" {
			return nil, &RowError{Row: i, Field: "estado"}
		}

		report.Rows = append(report.Rows, []interface{}{
			credit.CreditoID,
			credit.Producto,
			FormatCurrency(inversion),
			credit.CuotasTotales,
			tea.Mul(hundred).StringFixed(2) + "%",
			fecha,
			Capitalize(credit.Estado),
		})
	}
	return report, nil
}

// PreparePayments normalizes payment records into a tabular report.
func PreparePayments(payments []creditapi.Payment) (*TabularReport, error) {
	now := reportNow()
	report := &TabularReport{
		Title:    "Reporte de Pagos",
		Subtitle: reportSubtitle(now),
		Filename: reportFilename("pagos", now),
		Headers: []string{
			"Pago ID",
			"Fecha Pago",
			"Monto",
			"Medio",
			"Crédito ID",
			"N° Cuota",
		},
		Rows: make([][]interface{}, 0, len(payments)),
	}

	for i, payment := range payments {
		if payment.FechaPago == "" {
			return nil, &RowError{Row: i, Field: "fecha_pago"}
		}
		fecha, err := FormatDate(payment.FechaPago)
		if err != nil {
			return nil, &RowError{Row: i, Field: "fecha_pago", Err: err}
		}

		if payment.Monto == "" {
			return nil, &RowError{Row: i, Field: "monto"}
		}
		monto, err := ParseAmount(payment.Monto)
		if err != nil {
			return nil, &RowError{Row: i, Field: "monto", Err: err}
		}

		if payment.Medio == "" {
			return nil, &RowError{Row: i, Field: "medio"}
		}

		creditoID := interface{}(placeholderNA)
		if payment.CreditoInfo != nil && payment.CreditoInfo.CreditoID != 0 {
			creditoID = payment.CreditoInfo.CreditoID
		} else if payment.Credito != nil {
			creditoID = *payment.Credito
		}

		cuota := interface{}(placeholderNA)
		if payment.CuotaInfo != nil && payment.CuotaInfo.NumCuota != 0 {
			cuota = payment.CuotaInfo.NumCuota
		} else if payment.Cuota != nil {
			cuota = *payment.Cuota
		}

		report.Rows = append(report.Rows, []interface{}{
			payment.PagoID,
			fecha,
			FormatCurrency(monto),
			Capitalize(payment.Medio),
			creditoID,
			cuota,
		})
	}
	return report, nil
}
