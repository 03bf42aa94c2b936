package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCentsFromDecimal(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("8.50")
	cents, err := CentsFromDecimal(amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cents != 850 {
		t.Fatalf("expected 850, got %d", cents)
	}
}

func TestCentsFromDecimalRejectsSubCent(t *testing.T) {
	t.Parallel()

	if _, err := CentsFromDecimal(decimal.RequireFromString("8.505")); err == nil {
		t.Fatal("expected sub-cent amount to be rejected")
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	if got := FormatCents(1999); got != "19.99" {
		t.Fatalf("expected 19.99, got %s", got)
	}
	if got := FormatCents(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}
