package export

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"RodaClientPortal/internal/config"
)

var hundred = decimal.NewFromInt(100)

var (
	reportLocOnce sync.Once
	reportLoc     *time.Location
)

// reportNow returns the current time in the portal's display timezone, so
// generation stamps read the same regardless of where the server runs.
// Falls back to server-local time when tzdata is unavailable.
func reportNow() time.Time {
	reportLocOnce.Do(func() {
		loc, err := time.LoadLocation(config.DefaultTimeZone)
		if err != nil {
			loc = time.Local
		}
		reportLoc = loc
	})
	return time.Now().In(reportLoc)
}

// es-CO month abbreviations, as the portal renders dates everywhere.
var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// ParseAmount parses a decimal-string amount. Amounts travel as strings to
// avoid floating-point transport issues; a non-numeric string is a data
// error and must propagate, never silently become 0.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatCurrency renders an amount as es-CO COP with zero decimal digits,
// e.g. 1500000 -> "$ 1.500.000".
func FormatCurrency(d decimal.Decimal) string {
	rounded := d.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-$ " + b.String()
	}
	return "$ " + b.String()
}

// parseUpstreamDate accepts the date shapes the upstream emits: plain ISO
// dates and full timestamps.
func parseUpstreamDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate renders an upstream date string as an es-CO short date,
// e.g. "2024-06-15" -> "15 jun 2024".
func FormatDate(s string) (string, error) {
	t, err := parseUpstreamDate(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year()), nil
}

// FormatDateTime renders a timestamp as an es-CO short datetime,
// e.g. "15 jun 2024, 2:30 p. m.".
func FormatDateTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "a. m."
	if t.Hour() >= 12 {
		meridiem = "p. m."
	}
	return fmt.Sprintf("%d %s %d, %d:%02d %s",
		t.Day(), spanishMonths[t.Month()-1], t.Year(), hour, t.Minute(), meridiem)
}

// Capitalize upper-cases the first rune and leaves the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
