package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negatives, got %d", got)
	}
	if got := NormalizeLimit(500); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected passthrough, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("expected buffered limit 11, got %d", got)
	}
}

func TestTrimPageCursorPointsAtLastReturnedRow(t *testing.T) {
	t.Parallel()

	type row struct {
		CreatedAt time.Time
		ID        uuid.UUID
	}
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []row{
		{CreatedAt: base.Add(2 * time.Minute), ID: uuid.New()},
		{CreatedAt: base.Add(time.Minute), ID: uuid.New()},
		{CreatedAt: base, ID: uuid.New()},
	}
	cursorOf := func(r row) Cursor {
		return Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
	}

	page, next := TrimPage(rows, 2, cursorOf)
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
	if next == nil {
		t.Fatal("expected a next cursor")
	}
	// A strict < filter against this cursor must not skip rows[2], so the
	// cursor carries the last returned row, not the first excluded one.
	if next.ID != rows[1].ID || !next.CreatedAt.Equal(rows[1].CreatedAt) {
		t.Fatalf("cursor points at wrong row: %+v", next)
	}

	page, next = TrimPage(rows, 3, cursorOf)
	if len(page) != 3 || next != nil {
		t.Fatalf("expected full page without cursor, got %d rows, cursor %+v", len(page), next)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	original := Cursor{
		CreatedAt: time.Date(2025, 8, 1, 12, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := ParseCursor(EncodeCursor(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed == nil {
		t.Fatal("expected cursor")
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) || parsed.ID != original.ID {
		t.Fatalf("cursor mismatch: %+v vs %+v", parsed, original)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	t.Parallel()

	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("blank cursor should be nil, got %v %v", cursor, err)
	}
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
}
