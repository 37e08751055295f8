package render

import (
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ledgerdash/backend/internal/model"
)

// Formatter turns raw analytics numbers into display strings according to
// the user's saved preferences. Amounts are rounded to cents at this point
// and no earlier.
type Formatter struct {
	prefs   model.Preferences
	printer *message.Printer
}

// NewFormatter builds a formatter for the given preferences. Unparseable
// locale tags fall back to English rather than failing.
func NewFormatter(prefs model.Preferences) *Formatter {
	tag, err := language.Parse(prefs.Locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		prefs:   prefs,
		printer: message.NewPrinter(tag),
	}
}

// Currency renders an amount in the preferred currency, e.g. "$1,234.50".
func (f *Formatter) Currency(amount float64) string {
	cents := int64(math.Round(amount * 100))
	return money.New(cents, f.prefs.Currency).Display()
}

// Number renders a plain number with locale-aware grouping and at most two
// fraction digits.
func (f *Formatter) Number(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Percent renders a ratio already scaled to 0-100 with one fraction digit.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.1f%%", v)
}

// Date renders a date using the preferred template.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.prefs.Layout())
}
