package export

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"RodaClientPortal/internal/creditapi"
)

func intPtr(n int) *int { return &n }

func TestPrepareScheduleBasics(t *testing.T) {
	entries := []creditapi.ScheduleEntry{
		{
			NumCuota:         3,
			FechaVencimiento: "2024-06-15",
			ValorCuota:       "250000.00",
			Estado:           "pagada",
			CreditInfo:       &creditapi.CreditInfo{CreditoID: 7, Producto: "e-bike"},
		},
	}

	report, err := PrepareSchedule(entries)
	require.NoError(t, err)

	require.Equal(t, "Cronograma de Pagos", report.Title)
	require.Contains(t, report.Subtitle, "Reporte generado el ")
	require.Equal(t, []string{
		"N° Cuota", "Producto", "Fecha Vencimiento", "Valor Cuota", "Estado", "Crédito ID",
	}, report.Headers)
	require.Equal(t, "cronograma_"+reportNow().Format("2006-01-02")+".pdf", report.Filename)

	require.Len(t, report.Rows, 1)
	require.Equal(t, []interface{}{3, "e-bike", "15 jun 2024", "$ 250.000", "Pagada", 7}, report.Rows[0])
	require.NoError(t, report.Validate())
}

func TestPrepareScheduleNestedTakesPrecedence(t *testing.T) {
	entries := []creditapi.ScheduleEntry{
		{
			NumCuota:         1,
			Credito:          99,
			Producto:         "flat-producto",
			FechaVencimiento: "2024-01-10",
			ValorCuota:       "100000",
			Estado:           "pendiente",
			CreditInfo:       &creditapi.CreditInfo{CreditoID: 42, Producto: "moto"},
		},
	}

	report, err := PrepareSchedule(entries)
	require.NoError(t, err)
	require.Equal(t, "moto", report.Rows[0][1])
	require.Equal(t, 42, report.Rows[0][5])
}

func TestPrepareScheduleFlatFallback(t *testing.T) {
	entries := []creditapi.ScheduleEntry{
		{
			NumCuota:         2,
			Credito:          99,
			Producto:         "e-moped",
			FechaVencimiento: "2024-02-10",
			ValorCuota:       "100000",
			Estado:           "pendiente",
		},
	}

	report, err := PrepareSchedule(entries)
	require.NoError(t, err)
	require.Equal(t, "e-moped", report.Rows[0][1])
	require.Equal(t, 99, report.Rows[0][5])
}

func TestPrepareSchedulePlaceholderWhenAbsent(t *testing.T) {
	entries := []creditapi.ScheduleEntry{
		{
			NumCuota:         1,
			FechaVencimiento: "2024-02-10",
			ValorCuota:       "100000",
			Estado:           "pendiente",
		},
	}

	report, err := PrepareSchedule(entries)
	require.NoError(t, err)
	require.Equal(t, "N/A", report.Rows[0][1])
	require.Equal(t, "N/A", report.Rows[0][5])
}

func TestPrepareScheduleRowErrors(t *testing.T) {
	base := creditapi.ScheduleEntry{
		NumCuota:         1,
		FechaVencimiento: "2024-02-10",
		ValorCuota:       "100000",
		Estado:           "pendiente",
	}

	missingFecha := base
	missingFecha.FechaVencimiento = ""
	_, err := PrepareSchedule([]creditapi.ScheduleEntry{missingFecha})
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "fecha_vencimiento", rowErr.Field)
	require.Equal(t, 0, rowErr.Row)

	badValor := base
	badValor.ValorCuota = "abc"
	_, err = PrepareSchedule([]creditapi.ScheduleEntry{base, badValor})
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "valor_cuota", rowErr.Field)
	require.Equal(t, 1, rowErr.Row)

	missingEstado := base
	missingEstado.Estado = ""
	_, err = PrepareSchedule([]creditapi.ScheduleEntry{missingEstado})
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "estado", rowErr.Field)
}

func TestPrepareScheduleEmpty(t *testing.T) {
	report, err := PrepareSchedule(nil)
	require.NoError(t, err)
	require.Len(t, report.Rows, 0)
	require.Len(t, report.Headers, 6)
}

func TestPrepareCredits(t *testing.T) {
	credits := []creditapi.Credit{
		{
			CreditoID:       12,
			Producto:        "e-bike",
			Inversion:       "4500000.00",
			CuotasTotales:   36,
			TEA:             "0.285",
			FechaDesembolso: "2023-11-02",
			Estado:          "activo",
		},
	}

	report, err := PrepareCredits(credits)
	require.NoError(t, err)
	require.Equal(t, "Reporte de Créditos", report.Title)
	require.Equal(t, "creditos_"+reportNow().Format("2006-01-02")+".pdf", report.Filename)

	require.Len(t, report.Rows, 1)
	row := report.Rows[0]
	require.Equal(t, 12, row[0])
	require.Equal(t, "$ 4.500.000", row[2])
	require.Equal(t, 36, row[3])
	require.Equal(t, "28.50%", row[4])
	require.Equal(t, "2 nov 2023", row[5])
	require.Equal(t, "Activo", row[6])
}

func TestPrepareCreditsBadTEA(t *testing.T) {
	credits := []creditapi.Credit{
		{
			CreditoID:       12,
			Producto:        "e-bike",
			Inversion:       "4500000.00",
			TEA:             "N/A",
			FechaDesembolso: "2023-11-02",
			Estado:          "activo",
		},
	}
	_, err := PrepareCredits(credits)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, "tea", rowErr.Field)
	require.Error(t, errors.Unwrap(rowErr))
}

func TestPreparePayments(t *testing.T) {
	payments := []creditapi.Payment{
		{
			PagoID:    501,
			FechaPago: "2024-03-20",
			Monto:     "180000.00",
			Medio:     "nequi",
			CreditoInfo: &creditapi.PaymentCreditInfo{
				CreditoID: 42,
				Producto:  "moto",
			},
			CuotaInfo: &creditapi.CuotaInfo{NumCuota: 5},
		},
		{
			PagoID:    502,
			FechaPago: "2024-04-20",
			Monto:     "180000.00",
			Medio:     "efectivo",
			Credito:   intPtr(99),
			Cuota:     intPtr(6),
		},
		{
			PagoID:    503,
			FechaPago: "2024-05-20",
			Monto:     "180000.00",
			Medio:     "pse",
		},
	}

	report, err := PreparePayments(payments)
	require.NoError(t, err)
	require.Equal(t, "Reporte de Pagos", report.Title)
	require.Equal(t, "pagos_"+reportNow().Format("2006-01-02")+".pdf", report.Filename)
	require.Len(t, report.Rows, 3)

	// nested credito_info/cuota_info win over flat fields
	require.Equal(t, []interface{}{501, "20 mar 2024", "$ 180.000", "Nequi", 42, 5}, report.Rows[0])
	// flat fallback
	require.Equal(t, 99, report.Rows[1][4])
	require.Equal(t, 6, report.Rows[1][5])
	// neither present
	require.Equal(t, "N/A", report.Rows[2][4])
	require.Equal(t, "N/A", report.Rows[2][5])
}

func TestPreparePaymentsRowCountMatchesInput(t *testing.T) {
	payments := make([]creditapi.Payment, 25)
	for i := range payments {
		payments[i] = creditapi.Payment{
			PagoID:    i + 1,
			FechaPago: "2024-01-15",
			Monto:     "100000",
			Medio:     "nequi",
		}
	}
	report, err := PreparePayments(payments)
	require.NoError(t, err)
	require.Len(t, report.Rows, len(payments))
	for _, row := range report.Rows {
		require.Len(t, row, len(report.Headers))
	}
}
