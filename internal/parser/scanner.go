package parser

import "strings"

// isBlank reports whether a line is empty or whitespace-only.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// skipBlank advances past a run of blank lines and returns the index of the
// first non-blank line, or len(lines) if none remain. Applying it to an
// index already on a non-blank line returns that index unchanged.
func skipBlank(lines []string, i int) int {
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}
	return i
}

// skipNonBlank advances past a run of non-blank lines. It is the
// resynchronization step after a failed question parse: the cursor lands on
// the next blank-line boundary so one malformed question cannot corrupt the
// rest of the file.
func skipNonBlank(lines []string, i int) int {
	for i < len(lines) && !isBlank(lines[i]) {
		i++
	}
	return i
}
