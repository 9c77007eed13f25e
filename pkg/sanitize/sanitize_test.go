package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextStripsTagsAndControlChars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "tooth pain", "tooth pain"},
		{"html tags", "<script>alert(1)</script>checkup", "alert(1)checkup"},
		{"control chars", "hello\x00\x07world", "helloworld"},
		{"keeps newlines", "line one\nline two", "line one\nline two"},
		{"trims whitespace", "   padded   ", "padded"},
		{"entities decoded", "Tom &amp; Jerry", "Tom & Jerry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in, 0))
		})
	}
}

func TestTextTruncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	got := Text(long, 500)
	assert.Len(t, got, 500)
}

func TestLineCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Jane Doe", Line("  Jane \n\t Doe ", 0))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", Escape("<b>hi</b>"))
}
