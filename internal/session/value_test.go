package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCellValue(t *testing.T) {
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{"-7", -7, true},
		{"+5", 5, true},
		{" -3", -3, true},
		{"0", 0, true},
		{"4.7", 4, false},
		{"-2.9", -2, false},
		{"8px", 8, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCellValue(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
