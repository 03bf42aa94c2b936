package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
// Optional constraint names narrow the match to specific constraints.
func IsUniqueViolation(err error, constraints ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolationCode {
			return false
		}
		if len(constraints) == 0 {
			return true
		}
		for _, name := range constraints {
			if pgErr.ConstraintName == name {
				return true
			}
		}
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite (tests) reports violations as plain text
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") && !strings.Contains(msg, "duplicate key value") {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, name := range constraints {
		if strings.Contains(msg, name) {
			return true
		}
	}
	return false
}
