// Package locale renders numbers, currency amounts, dates and yes/no words for
// one fixed locale. It underlies the variable type registry and is not meant
// to be called by template authors directly.
package locale

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale describes the conventions used by a Formatter.
type Locale struct {
	Name           string
	Tag            language.Tag
	Currency       currency.Unit
	CurrencySymbol string
	Months         [12]string
	// YearOffset is added to the Gregorian year when rendering dates (543 for
	// the Thai Buddhist era).
	YearOffset int
	Yes        string
	No         string
	// PrintedLabel prefixes the print date on exported pages.
	PrintedLabel string
}

// Thai is the default locale: THB amounts and Buddhist-era long dates.
var Thai = Locale{
	Name:           "th",
	Tag:            language.Thai,
	Currency:       currency.THB,
	CurrencySymbol: "฿",
	Months: [12]string{
		"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
		"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
	},
	YearOffset:   543,
	Yes:          "ใช่",
	No:           "ไม่ใช่",
	PrintedLabel: "พิมพ์เมื่อ",
}

// English renders USD amounts and Gregorian dates.
var English = Locale{
	Name:           "en",
	Tag:            language.AmericanEnglish,
	Currency:       currency.USD,
	CurrencySymbol: "$",
	Months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	Yes:          "Yes",
	No:           "No",
	PrintedLabel: "Printed",
}

// Lookup resolves a locale by short name ("th", "en").
func Lookup(name string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "th", "th-th":
		return Thai, nil
	case "en", "en-us":
		return English, nil
	default:
		return Locale{}, fmt.Errorf("locale: unsupported locale %q", name)
	}
}

// maxNumberFractionDigits caps the decimals kept for plain numbers.
const maxNumberFractionDigits = 3

// Formatter renders values for a single Locale. It holds no mutable state and
// is safe for concurrent use.
type Formatter struct {
	locale Locale
	scale  int
}

// NewFormatter builds a Formatter for the supplied locale.
func NewFormatter(loc Locale) *Formatter {
	scale, _ := currency.Standard.Rounding(loc.Currency)
	return &Formatter{locale: loc, scale: scale}
}

// Default returns a Formatter for the Thai locale.
func Default() *Formatter {
	return NewFormatter(Thai)
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

func (f *Formatter) printer() *message.Printer {
	return message.NewPrinter(f.locale.Tag)
}

// Number renders value with thousands grouping. Integral values get no
// decimals; fractional values keep up to three significant decimals.
func (f *Formatter) Number(value float64) string {
	value = finite(value)
	decimals := fractionDigits(value, maxNumberFractionDigits)
	return f.printer().Sprint(number.Decimal(value, number.Scale(decimals)))
}

// Currency renders value with the currency symbol, grouping and the
// currency's standard number of decimals.
func (f *Formatter) Currency(value float64) string {
	value = finite(value)
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	amount := f.printer().Sprint(number.Decimal(value, number.Scale(f.scale)))
	return sign + f.locale.CurrencySymbol + amount
}

// CurrencyCode returns the ISO 4217 code of the locale currency.
func (f *Formatter) CurrencyCode() string {
	return f.locale.Currency.String()
}

// LongDate renders day, month name and year, e.g. "18 ตุลาคม 2569".
func (f *Formatter) LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), f.locale.Months[t.Month()-1], t.Year()+f.locale.YearOffset)
}

// ShortDate renders d/m/yyyy using the locale year offset.
func (f *Formatter) ShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+f.locale.YearOffset)
}

// Bool renders the locale words for yes and no.
func (f *Formatter) Bool(value bool) string {
	if value {
		return f.locale.Yes
	}
	return f.locale.No
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// fractionDigits counts the decimals needed to represent value, capped at max.
func fractionDigits(value float64, max int) int {
	if value == math.Trunc(value) {
		return 0
	}
	scaled := math.Abs(value)
	for digits := 1; digits <= max; digits++ {
		scaled *= 10
		if math.Abs(scaled-math.Round(scaled)) < 1e-6 {
			return digits
		}
	}
	return max
}
