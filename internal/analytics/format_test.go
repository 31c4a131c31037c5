package analytics

import (
	"math"
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:       "$0.00",
		12.5:    "$12.50",
		1234.56: "$1234.56",
		90:      "$90.00",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCurrencyCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{999, "$999.00"},
		{1000, "$1000.00"},
		{9999.99, "$9999.99"},
		{10000, "$10.0k"},
		{12345, "$12.3k"},
		{999999, "$1000.0k"},
		{1000000, "$1.0M"},
		{2500000, "$2.5M"},
		{1000000000, "$1.0B"},
	}
	for _, tc := range cases {
		if got := FormatCurrencyCompact(tc.in); got != tc.want {
			t.Fatalf("FormatCurrencyCompact(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{12.5, "12.5"},
		{999, "999"},
		{1000, "1.0k"},
		{1500, "1.5k"},
		{1000000, "1.0M"},
		{3200000000, "3.2B"},
	}
	for _, tc := range cases {
		if got := FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNonFinite(t *testing.T) {
	cases := []struct {
		in                float64
		currency, compact string
		number            string
	}{
		{math.NaN(), "$NaN", "$NaN", "NaN"},
		{math.Inf(1), "$Infinity", "$Infinity", "Infinity"},
		{math.Inf(-1), "$-Infinity", "$-Infinity", "-Infinity"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.currency {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.currency)
		}
		if got := FormatCurrencyCompact(tc.in); got != tc.compact {
			t.Fatalf("FormatCurrencyCompact(%v) = %q, want %q", tc.in, got, tc.compact)
		}
		if got := FormatNumber(tc.in); got != tc.number {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tc.in, got, tc.number)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 21, 5, 0, 0, time.UTC)
	if got := FormatDate(ts); got != "Mar 7, 2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatTime(ts); got != "09:05 PM" {
		t.Fatalf("FormatTime = %q", got)
	}
	morning := time.Date(2025, time.March, 7, 0, 30, 0, 0, time.UTC)
	if got := FormatTime(morning); got != "12:30 AM" {
		t.Fatalf("FormatTime = %q", got)
	}
}
