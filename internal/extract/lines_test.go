package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"Ana Petrova", "Mira Iloska", ""}, SplitLines("Ana Petrova\nMira Iloska\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb"))
	assert.Equal(t, []string{""}, SplitLines(""))
}

func TestDropEndOfTextLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "trailing empty marker removed",
			lines: []string{"Ana Petrova", "Mira Iloska", ""},
			want:  []string{"Ana Petrova", "Mira Iloska"},
		},
		{
			name:  "non-empty final line still removed",
			lines: []string{"Ana Petrova", "Mira Iloska"},
			want:  []string{"Ana Petrova"},
		},
		{
			name:  "single line removed leaving nothing",
			lines: []string{"Solo Name"},
			want:  []string{},
		},
		{
			name:  "mid-sequence blanks survive",
			lines: []string{"Ana Petrova", "", "Mira Iloska", ""},
			want:  []string{"Ana Petrova", "", "Mira Iloska"},
		},
		{
			name:  "empty input stays empty",
			lines: []string{},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DropEndOfTextLine(tt.lines))
		})
	}
}
