package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSections(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		headers []string
		want    map[string]string
	}{
		{
			name:    "greek headers",
			text:    "Σύνοψη\nline A\nline B\nΑδύναμα σημεία\nline C",
			headers: []string{"Σύνοψη", "Αδύναμα σημεία"},
			want: map[string]string{
				"Σύνοψη":         "line A\nline B",
				"Αδύναμα σημεία": "line C",
			},
		},
		{
			name:    "ordinal prefixes open sections",
			text:    "1. anything here\nfirst body\n2.\nsecond body",
			headers: []string{"Summary", "Weaknesses"},
			want: map[string]string{
				"Summary":    "first body",
				"Weaknesses": "second body",
			},
		},
		{
			name:    "case insensitive header match",
			text:    "SUMMARY of the rig\ncontent line",
			headers: []string{"Summary"},
			want:    map[string]string{"Summary": "content line"},
		},
		{
			name:    "preamble lands in general",
			text:    "hello\nSummary\nbody",
			headers: []string{"Summary"},
			want:    map[string]string{"general": "hello", "Summary": "body"},
		},
		{
			name:    "repeated header restarts its section",
			text:    "Summary\nold body\nSummary\nnew body",
			headers: []string{"Summary"},
			want:    map[string]string{"Summary": "new body"},
		},
		{
			name:    "blank lines are dropped",
			text:    "Σύνοψη\nline A\n\nline B",
			headers: []string{"Σύνοψη"},
			want:    map[string]string{"Σύνοψη": "line A\nline B"},
		},
		{
			name:    "no headers matched",
			text:    "just some text\nmore text",
			headers: []string{"Summary"},
			want:    map[string]string{"general": "just some text\nmore text"},
		},
		{
			name:    "empty text",
			text:    "",
			headers: []string{"Summary"},
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSections(tt.text, tt.headers))
		})
	}
}
