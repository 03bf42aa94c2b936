package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a customer intends to settle an order. The
// method is recorded on the order; actual processing happens elsewhere.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCOD  PaymentMethod = "cod"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodUPI,
	PaymentMethodCard,
	PaymentMethodCOD,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod. Matching is
// case-insensitive and accepts the legacy "CashOnDelivery" spelling; the
// canonical lowercase form is always returned.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	folded := strings.ToLower(strings.TrimSpace(value))
	if folded == "cashondelivery" {
		return PaymentMethodCOD, nil
	}
	for _, candidate := range validPaymentMethods {
		if string(candidate) == folded {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
