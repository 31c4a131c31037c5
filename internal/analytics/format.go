package analytics

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000

	// compact currency starts abbreviating at ten thousand, plain numbers at one thousand
	compactCurrencyThreshold = 10_000
)

// FormatCurrency renders amount with two decimals, e.g. "$12.50".
func FormatCurrency(amount float64) string {
	if v, ok := nonFinite(amount); ok {
		return CurrencySymbol + v
	}
	return CurrencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatCurrencyCompact abbreviates amounts of 10,000 and more:
// "$9999.99", "$10.0k", "$2.5M", "$1.0B".
func FormatCurrencyCompact(amount float64) string {
	if v, ok := nonFinite(amount); ok {
		return CurrencySymbol + v
	}
	switch {
	case amount >= billion:
		return CurrencySymbol + scaled(amount, billion) + "B"
	case amount >= million:
		return CurrencySymbol + scaled(amount, million) + "M"
	case amount >= compactCurrencyThreshold:
		return CurrencySymbol + scaled(amount, thousand) + "k"
	}
	return FormatCurrency(amount)
}

// FormatNumber abbreviates from 1,000 upwards; smaller values are printed in
// their shortest form ("999", "12.5").
func FormatNumber(num float64) string {
	if v, ok := nonFinite(num); ok {
		return v
	}
	switch {
	case num >= billion:
		return scaled(num, billion) + "B"
	case num >= million:
		return scaled(num, million) + "M"
	case num >= thousand:
		return scaled(num, thousand) + "k"
	}
	return strconv.FormatFloat(num, 'f', -1, 64)
}

// nonFinite spells NaN and infinities the way the app always displayed them.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}

func scaled(v float64, unit int64) string {
	return decimal.NewFromFloat(v).Div(decimal.NewFromInt(unit)).StringFixed(1)
}

// FormatDate renders t like "Mar 7, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatTime renders t like "09:05 PM".
func FormatTime(t time.Time) string {
	return t.Format("03:04 PM")
}
