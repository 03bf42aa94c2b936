package types

import "strings"

// DeliveryAddress is the drop-off location captured on an order: the named
// delivery area plus the free-form street address. Both fields are optional so
// pickup-style orders can submit an empty address.
type DeliveryAddress struct {
	Area    string `json:"area,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsZero reports whether no address field carries a value.
func (a DeliveryAddress) IsZero() bool {
	return strings.TrimSpace(a.Area) == "" && strings.TrimSpace(a.Address) == ""
}
