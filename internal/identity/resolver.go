// Package identity normalizes the mixed identifier shapes that reach the
// API. Records minted by this service carry UUIDs, while records imported
// from the legacy catalog are referenced by numeric codes that some clients
// still send as raw JSON numbers.
package identity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Canonicalize reduces any supported identifier value to its canonical
// string form. UUID-shaped strings are lowercased, numbers become their
// decimal representation, and everything else is stringified and trimmed.
// Two identifiers refer to the same record exactly when their canonical
// forms are equal.
func Canonicalize(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return canonicalizeString(v)
	case json.Number:
		return canonicalizeString(v.String())
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uuid.UUID:
		return v.String()
	case fmt.Stringer:
		return canonicalizeString(v.String())
	default:
		return canonicalizeString(fmt.Sprint(v))
	}
}

func canonicalizeString(value string) string {
	trimmed := strings.TrimSpace(value)
	if IsRecordKey(trimmed) {
		return strings.ToLower(trimmed)
	}
	return trimmed
}

// IsRecordKey reports whether the value is a canonical-format UUID, i.e. an
// identifier this service minted rather than a legacy code.
func IsRecordKey(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// FlexID accepts a JSON string or number and preserves the identifier as
// the client spelled it. Legacy mobile clients send numeric product and
// owner identifiers without quoting them.
type FlexID string

// UnmarshalJSON decodes either representation. Numbers are kept in their
// decimal form, strings are trimmed but otherwise untouched.
func (f *FlexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}

// MarshalJSON renders the stored string form.
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the identifier as submitted.
func (f FlexID) String() string {
	return string(f)
}

// Canonical returns the canonical comparison form of the identifier.
func (f FlexID) Canonical() string {
	return Canonicalize(string(f))
}

// IsZero reports whether no identifier was provided.
func (f FlexID) IsZero() bool {
	return strings.TrimSpace(string(f)) == ""
}
