package engine

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// UTF16Len returns the length of s in the column unit the engine uses.
func UTF16Len(s string) int {
	return utf16Len(s)
}

// byteIndex converts a UTF-16 column into a byte index into s.
// Columns past the end map to len(s). A column that falls inside a
// surrogate pair maps to the start of that rune.
func byteIndex(s string, column int) int {
	if column <= 0 {
		return 0
	}
	units := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if units+w > column {
			return i
		}
		units += w
		if units == column {
			return i + utf8.RuneLen(r)
		}
	}
	return len(s)
}

// sliceUTF16 returns the part of s between two UTF-16 columns.
func sliceUTF16(s string, start, end int) string {
	if end < start {
		start, end = end, start
	}
	return s[byteIndex(s, start):byteIndex(s, end)]
}
