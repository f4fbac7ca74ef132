package conventional

import (
	"strings"
)

// subjectLine returns the subject of a commit message the way
// `git log --format=%s` does: the lines of the first paragraph, with
// trailing whitespace removed, joined by a single space.
func subjectLine(message string) string {
	// Normalize line endings
	message = strings.ReplaceAll(message, "\r\n", "\n")

	sections := splitIntoSections(message)
	if len(sections) == 0 {
		return ""
	}

	return strings.Join(sections[0], " ")
}

// splitIntoSections splits a message by empty lines into sections of
// right-trimmed lines.
func splitIntoSections(message string) [][]string {
	lines := strings.Split(message, "\n")

	var sections [][]string
	var currentSection []string

	for _, line := range lines {
		line = strings.TrimRightFunc(line, isSpace)
		if line == "" {
			// Empty line marks section boundary
			if len(currentSection) > 0 {
				sections = append(sections, currentSection)
				currentSection = nil
			}

			continue
		}

		currentSection = append(currentSection, line)
	}

	// Add final section
	if len(currentSection) > 0 {
		sections = append(sections, currentSection)
	}

	return sections
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
