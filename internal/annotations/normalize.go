package annotations

import (
	"strings"
	"unicode"
)

// Normalize strips comment decoration from a raw comment block: the /* */
// delimiters, // line prefixes, leading asterisk markers and the common
// indentation. Line breaks are preserved.
func Normalize(comment string) string {
	text := strings.TrimSpace(strings.ReplaceAll(comment, "\r\n", "\n"))
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "/*") {
		text = strings.TrimLeft(text[2:], "*")
		text = strings.TrimSuffix(text, "*/")
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = stripLineMarker(line)
	}

	lines = dedent(lines)
	return strings.Join(trimBlankEdges(lines), "\n")
}

// stripLineMarker removes a leading "//" or "*" marker and the single space after it
func stripLineMarker(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)

	switch {
	case strings.HasPrefix(trimmed, "*/"):
		return ""
	case strings.HasPrefix(trimmed, "//"):
		trimmed = strings.TrimLeft(trimmed, "/")
	case strings.HasPrefix(trimmed, "*"):
		trimmed = trimmed[1:]
	default:
		return strings.TrimRightFunc(line, unicode.IsSpace)
	}

	trimmed = strings.TrimPrefix(trimmed, " ")
	return strings.TrimRightFunc(trimmed, unicode.IsSpace)
}

// dedent removes the indentation shared by every non-blank line
func dedent(lines []string) []string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}
	if common <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= common {
			out[i] = line[common:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
