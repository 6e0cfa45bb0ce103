package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		amount string
		want   string
	}{
		{name: "two decimals kept", symbol: "$", amount: "12.5", want: "$12.50"},
		{name: "whole number padded", symbol: "€", amount: "7", want: "€7.00"},
		{name: "extra precision rounded", symbol: "₹", amount: "3.456", want: "₹3.46"},
		{name: "zero", symbol: "$", amount: "0", want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(tt.symbol, decimal.RequireFromString(tt.amount))
			if got != tt.want {
				t.Errorf("FormatAmount(%q, %s) = %q, want %q", tt.symbol, tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 6, 1, 15, 0, 0, 0, time.Local)
	if got := FormatDate(date); got != "01 Jun 2024" {
		t.Errorf("FormatDate = %q, want %q", got, "01 Jun 2024")
	}
}
