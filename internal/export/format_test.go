package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("1500000.00")
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.NewFromInt(1500000)))

	d, err = ParseAmount("  250000.50 ")
	require.NoError(t, err)
	require.Equal(t, "250000.5", d.String())

	_, err = ParseAmount("no-es-numero")
	require.Error(t, err)

	_, err = ParseAmount("")
	require.Error(t, err)
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1500000.00", "$ 1.500.000"},
		{"250000", "$ 250.000"},
		{"999", "$ 999"},
		{"1000", "$ 1.000"},
		{"0", "$ 0"},
		{"-42000", "-$ 42.000"},
		{"1234567.49", "$ 1.234.567"},
		{"1234567.50", "$ 1.234.568"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, FormatCurrency(d), "input %s", tc.in)
	}
}

func TestFormatCurrencyRoundTrip(t *testing.T) {
	// Amounts travel as strings; parse then format must be stable
	d, err := ParseAmount("1500000.00")
	require.NoError(t, err)
	require.Equal(t, "$ 1.500.000", FormatCurrency(d))
}

func TestFormatDate(t *testing.T) {
	got, err := FormatDate("2024-06-15")
	require.NoError(t, err)
	require.Equal(t, "15 jun 2024", got)

	got, err = FormatDate("2025-01-03")
	require.NoError(t, err)
	require.Equal(t, "3 ene 2025", got)

	// full timestamps are accepted too
	got, err = FormatDate("2024-12-31T10:30:00")
	require.NoError(t, err)
	require.Equal(t, "31 dic 2024", got)

	_, err = FormatDate("no-fecha")
	require.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	afternoon := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
	require.Equal(t, "15 jun 2024, 2:30 p. m.", FormatDateTime(afternoon))

	morning := time.Date(2024, time.June, 15, 9, 5, 0, 0, time.UTC)
	require.Equal(t, "15 jun 2024, 9:05 a. m.", FormatDateTime(morning))

	midnight := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "15 jun 2024, 12:00 a. m.", FormatDateTime(midnight))

	noon := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "15 jun 2024, 12:00 p. m.", FormatDateTime(noon))
}

func TestReportNowUsesBogotaClock(t *testing.T) {
	require.Equal(t, "America/Bogota", reportNow().Location().String())
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Pagada", Capitalize("pagada"))
	require.Equal(t, "Pagada", Capitalize("Pagada"))
	require.Equal(t, "Único", Capitalize("único"))
	require.Equal(t, "", Capitalize(""))
}
