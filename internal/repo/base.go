package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM connection shared by the storefront repositories
// (catalog, cart, orders) and centralizes context binding and transaction
// rebinding.
type Base struct {
	conn *gorm.DB
}

// NewBase wraps the provided GORM connection.
func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns the connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}

// Rebind returns a Base running on the transaction. A nil tx keeps the
// current connection so repositories can be used unchanged outside one.
func (b Base) Rebind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{conn: tx}
}
