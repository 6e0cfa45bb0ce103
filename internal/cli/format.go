package cli

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateFormat matches the "02 Jan 2006" style used across the app.
const DisplayDateFormat = "02 Jan 2006"

// FormatAmount renders a monetary amount with the configured currency symbol
// and two decimal places.
func FormatAmount(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// FormatDate renders a calendar date for display.
func FormatDate(date time.Time) string {
	return date.Format(DisplayDateFormat)
}
