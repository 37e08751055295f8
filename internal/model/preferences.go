package model

// Preferences holds the user-selected display settings the render layer
// applies when turning analytics results into strings. They never affect
// the analytics computations themselves.
type Preferences struct {
	Locale     string `json:"locale"`      // BCP 47 tag, e.g. "en-US"
	Currency   string `json:"currency"`    // ISO 4217 code, e.g. "USD"
	DateFormat string `json:"date_format"` // one of the DateFormats keys
}

// DateFormats maps the template names offered in the settings page to Go
// reference layouts.
var DateFormats = map[string]string{
	"MM/DD/YYYY":   "01/02/2006",
	"DD/MM/YYYY":   "02/01/2006",
	"YYYY-MM-DD":   "2006-01-02",
	"DD MMM YYYY":  "02 Jan 2006",
	"MMM DD, YYYY": "Jan 02, 2006",
}

// DefaultPreferences is what a fresh store starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Locale:     "en-US",
		Currency:   "USD",
		DateFormat: "MM/DD/YYYY",
	}
}

// Layout resolves the preference's date format to a Go layout, falling back
// to the default template for unknown names.
func (p Preferences) Layout() string {
	if layout, ok := DateFormats[p.DateFormat]; ok {
		return layout
	}
	return DateFormats["MM/DD/YYYY"]
}
