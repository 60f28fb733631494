package prakt

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// CellSize reports the number of terminal cells a rune occupies. Most
// runes take one cell, East Asian wide runes and many emoji take two,
// control and combining runes take none.
func CellSize(r rune) int {
	return runewidth.RuneWidth(r)
}

func computeCellLen(s string) int {
	n := 0
	for _, r := range s {
		n += CellSize(r)
	}
	return n
}

// CellLen reports the total cell width of s. Results for longer strings
// are memoized in an LRU cache.
func CellLen(s string) int {
	if len(s) < cellLenCacheMin {
		return computeCellLen(s)
	}
	cache := cellLenCache
	if cache == nil {
		return computeCellLen(s)
	}
	if n, ok := cache.Get(s); ok {
		return n
	}
	n := computeCellLen(s)
	cache.Add(s, n)
	return n
}

// CellLenUncached reports the cell width of s without touching the cache.
func CellLenUncached(s string) int {
	return computeCellLen(s)
}

// SetCellSize fits s to exactly total cells, truncating or padding with
// spaces. A wide rune that straddles the boundary is dropped and replaced
// by padding.
func SetCellSize(s string, total int) string {
	current := CellLen(s)
	if current == total {
		return s
	}
	if current < total {
		return s + strings.Repeat(" ", total-current)
	}
	truncated, width := truncateToWidth(s, total)
	if width < total {
		return truncated + strings.Repeat(" ", total-width)
	}
	return truncated
}

func truncateToWidth(s string, maxWidth int) (string, int) {
	width := 0
	end := 0
	for i, r := range s {
		w := CellSize(r)
		if width+w > maxWidth {
			break
		}
		width += w
		end = i + utf8.RuneLen(r)
	}
	return s[:end], width
}

// ChopCells splits s at a cell position. The left part holds at most
// maxSize cells; a wide rune that would straddle the cut stays on the
// right.
func ChopCells(s string, maxSize int) (string, string) {
	width := 0
	pos := 0
	for i, r := range s {
		w := CellSize(r)
		if width+w > maxSize {
			break
		}
		width += w
		pos = i + utf8.RuneLen(r)
	}
	return s[:pos], s[pos:]
}

// CellPosition pairs the byte offset of a rune with the cell column it
// starts at.
type CellPosition struct {
	ByteIndex int
	Cell      int
}

// CellPositions maps every rune in s to its starting cell column.
func CellPositions(s string) []CellPosition {
	positions := make([]CellPosition, 0, utf8.RuneCountInString(s))
	cell := 0
	for i, r := range s {
		positions = append(positions, CellPosition{ByteIndex: i, Cell: cell})
		cell += CellSize(r)
	}
	return positions
}

// CellToByteIndex finds the byte offset of the rune at a cell column.
// The second return is false when the column lies past the end of s.
func CellToByteIndex(s string, cell int) (int, bool) {
	current := 0
	for i, r := range s {
		if current >= cell {
			return i, true
		}
		current += CellSize(r)
	}
	if current >= cell {
		return len(s), true
	}
	return 0, false
}

// HasWideRunes reports whether s contains any rune wider than one cell.
func HasWideRunes(s string) bool {
	for _, r := range s {
		if CellSize(r) > 1 {
			return true
		}
	}
	return false
}
