package annotations

import "strings"

// Occurrence is one tag found in normalized comment text, with its argument
// text still unparsed.
type Occurrence struct {
	Name   string // tag name without the '@'
	Args   string // raw argument text: "(...)", inline text, or empty
	Offset int    // byte offset of the '@'
}

// Extraction is the result of scanning a comment block
type Extraction struct {
	Occurrences []Occurrence
	Misses      []*SyntaxError
}

// Extract scans normalized text for tag occurrences, left to right.
//
// A tag is an '@' at the start of the text or after whitespace, followed by
// an identifier. Its argument text is a parenthesized group (ending at the
// first ')' outside quotes), otherwise the rest of the line, otherwise empty.
// Occurrences with an unterminated group or quote are reported as misses and
// scanning continues after the tag name.
func Extract(text string) Extraction {
	var result Extraction

	i := 0
	for i < len(text) {
		if text[i] != '@' || (i > 0 && !isSpace(text[i-1])) {
			i++
			continue
		}

		nameStart := i + 1
		if nameStart >= len(text) || !isIdentStart(text[nameStart]) {
			i++
			continue
		}
		nameEnd := nameStart + 1
		for nameEnd < len(text) && isIdentPart(text[nameEnd]) {
			nameEnd++
		}
		name := text[nameStart:nameEnd]

		argStart := nameEnd
		for argStart < len(text) && (text[argStart] == ' ' || text[argStart] == '\t') {
			argStart++
		}

		switch {
		case argStart < len(text) && text[argStart] == '(':
			end, reason := scanGroup(text, argStart)
			if reason != "" {
				result.Misses = append(result.Misses, NewSyntaxError(name, reason, text, i))
				i = nameEnd
				continue
			}
			result.Occurrences = append(result.Occurrences, Occurrence{Name: name, Args: text[argStart : end+1], Offset: i})
			i = end + 1

		case argStart >= len(text) || text[argStart] == '\n' || text[argStart] == '\r' || text[argStart] == '@':
			result.Occurrences = append(result.Occurrences, Occurrence{Name: name, Offset: i})
			i = nameEnd

		default:
			lineEnd := strings.IndexByte(text[argStart:], '\n')
			if lineEnd < 0 {
				lineEnd = len(text)
			} else {
				lineEnd += argStart
			}
			args := strings.TrimRight(text[argStart:lineEnd], " \t\r")
			result.Occurrences = append(result.Occurrences, Occurrence{Name: name, Args: args, Offset: i})
			i = lineEnd
		}
	}

	return result
}

// scanGroup finds the ')' closing the group opened at start.
// It returns a non-empty reason when the group or a quote inside it never closes.
func scanGroup(text string, start int) (end int, reason string) {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case ')':
			return i, ""
		case '"', '\'':
			closing := closingQuote(text, i)
			if closing < 0 {
				return -1, ReasonUnterminatedQuote
			}
			i = closing
		}
	}
	return -1, ReasonUnterminatedGroup
}

// closingQuote returns the index of the quote matching the one at start,
// skipping backslash escapes, or -1.
func closingQuote(text string, start int) int {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// isIdentPart also accepts path separators so namespaced tags stay whole
func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '\\' || c == '/'
}
