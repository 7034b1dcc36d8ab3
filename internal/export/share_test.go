package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryTemplate(t *testing.T) {
	report := sampleReport()
	summary := Summary(report)

	lines := strings.Split(summary, "\n")
	require.Equal(t, "*Cronograma de Pagos*", lines[0])
	require.Equal(t, report.Subtitle, lines[1])
	require.Equal(t, "", lines[2])
	require.Equal(t, "Total de registros: 2", lines[3])
	require.True(t, strings.HasPrefix(lines[4], "Generado el: "))
	require.Equal(t, "", lines[5])
	require.Equal(t, "_Reporte generado desde la app de Roda_", lines[6])
}

func TestShareURLWhatsApp(t *testing.T) {
	link, err := ShareURL(sampleReport(), ShareWhatsApp)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://wa.me/?text="))

	encoded := strings.TrimPrefix(link, "https://wa.me/?text=")
	decoded, err := url.QueryUnescape(encoded)
	require.NoError(t, err)
	require.Contains(t, decoded, "*Cronograma de Pagos*")
	require.Contains(t, decoded, "Total de registros: 2")
	// raw text must be escaped
	require.NotContains(t, encoded, " ")
	require.NotContains(t, encoded, "\n")
}

func TestShareURLEmail(t *testing.T) {
	link, err := ShareURL(sampleReport(), ShareEmail)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "mailto:?subject="))
	require.Contains(t, link, "&body=")

	u, err := url.Parse(link)
	require.NoError(t, err)
	q, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)
	require.Equal(t, "Cronograma de Pagos", q.Get("subject"))
	require.Contains(t, q.Get("body"), "Total de registros: 2")
}

func TestShareURLUnsupportedMethod(t *testing.T) {
	_, err := ShareURL(sampleReport(), "telegram")
	require.Error(t, err)
}

func TestShareInvokesOpener(t *testing.T) {
	var opened string
	err := Share(sampleReport(), ShareWhatsApp, func(link string) error {
		opened = link
		return nil
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(opened, "https://wa.me/?text="))

	// opener is never called for an unsupported method
	called := false
	err = Share(sampleReport(), "sms", func(string) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}
