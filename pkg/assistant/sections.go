package assistant

import (
	"fmt"
	"strings"
)

// ExtractSections splits generated analysis text into the given
// sections. A line opens a section when it contains the header text
// (case-insensitive) or starts with the header's ordinal ("1.", "2.",
// ...). Lines before any header land in "general". A header seen again
// later restarts its section. Blank lines are dropped; empty sections
// are omitted.
func ExtractSections(text string, headers []string) map[string]string {
	lowered := make([]string, len(headers))
	ordinals := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(h)
		ordinals[i] = fmt.Sprintf("%d.", i+1)
	}

	buffers := make(map[string][]string, len(headers)+1)
	current := "general"

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)

		matched := false
		for i, header := range headers {
			if strings.Contains(lower, lowered[i]) || strings.HasPrefix(trimmed, ordinals[i]) {
				current = header
				buffers[header] = nil
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		buffers[current] = append(buffers[current], line)
	}

	out := make(map[string]string, len(buffers))
	for section, lines := range buffers {
		content := strings.TrimSpace(strings.Join(lines, "\n"))
		if content != "" {
			out[section] = content
		}
	}
	return out
}
