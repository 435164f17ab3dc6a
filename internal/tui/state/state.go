// Package state holds cursor and viewport arithmetic for the list screen.
package state

import "github.com/glabrego/rickmorty-cli/internal/catalog"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is how far page-up/page-down moves the cursor for a screen of
// the given height.
func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of rows to draw so the
// cursor stays near the middle.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// IndexOfCharacter finds the row holding the character with id, or -1.
func IndexOfCharacter(records []catalog.Character, id int) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
