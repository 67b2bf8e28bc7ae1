package session

import (
	"strconv"
	"strings"
)

// ParseCellValue converts user-entered text into a cell value.
//
// Leading whitespace is skipped and the longest signed decimal prefix is
// used, so "12", " -3", "4.7" and "8px" give 12, -3, 4 and 8. Text with no
// leading digits, or a prefix that overflows int, gives 0. ok is false when
// the text was not a clean integer and had to be coerced.
func ParseCellValue(raw string) (value int, ok bool) {
	s := strings.TrimSpace(raw)
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, false
}
