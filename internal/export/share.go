package export

import (
	"fmt"
	"net/url"

	"RodaClientPortal/internal/config"
)

// ShareMethod selects the external messaging channel.
type ShareMethod string

const (
	ShareWhatsApp ShareMethod = "whatsapp"
	ShareEmail    ShareMethod = "email"
)

// LinkOpener hands a deep-link URL to the surrounding navigation context.
// Injected so the builder stays testable without any browser environment;
// the HTTP surface passes an opener that returns the URL to the caller.
type LinkOpener func(url string) error

// Summary builds the plain-text share body: bolded title, subtitle, row
// count, generation timestamp, fixed attribution.
func Summary(report *TabularReport) string {
	return fmt.Sprintf("*%s*\n%s\n\nTotal de registros: %d\nGenerado el: %s\n\n_%s_",
		report.Title,
		report.Subtitle,
		len(report.Rows),
		FormatDateTime(reportNow()),
		config.ShareAttribution,
	)
}

// ShareURL builds the deep link for the given method. No network request is
// made here; the external messaging client performs the actual send.
func ShareURL(report *TabularReport, method ShareMethod) (string, error) {
	summary := Summary(report)
	switch method {
	case ShareWhatsApp:
		return "https://wa.me/?text=" + url.QueryEscape(summary), nil
	case ShareEmail:
		subject := report.Title
		if subject == "" {
			subject = config.DefaultSheetName
		}
		return "mailto:?subject=" + url.QueryEscape(subject) + "&body=" + url.QueryEscape(summary), nil
	default:
		return "", fmt.Errorf("unsupported share method: %q", method)
	}
}

// Share builds the deep link and hands it to the opener.
func Share(report *TabularReport, method ShareMethod, open LinkOpener) error {
	link, err := ShareURL(report, method)
	if err != nil {
		return err
	}
	return open(link)
}
