package annotations

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// argumentLexer tokenizes the interior of a parenthesized argument list so
// that commas inside quoted strings do not split segments.
var argumentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:\\[\s\S]|[^"\\])*"|'(?:\\[\s\S]|[^'\\])*'`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Quote", Pattern: `["']`},
	{Name: "Text", Pattern: `[^,"']+`},
})

var commaToken = argumentLexer.Symbols()["Comma"]

// keyPrefix matches "name =" or "name:" at the start of a segment
var keyPrefix = regexp.MustCompile(`^\s*([A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*)\s*[=:]\s*`)

// ParseArguments turns the raw argument text of one tag into a value:
// empty text is Bool(true), "(...)" is a keyed group, anything else is
// inline text.
func ParseArguments(args string) (Value, error) {
	if args == "" {
		return Bool(true), nil
	}
	if strings.HasPrefix(args, "(") {
		return parseGroup(args)
	}
	return parseInline(args), nil
}

func parseGroup(args string) (Value, error) {
	interior := strings.TrimPrefix(args, "(")
	interior = strings.TrimSuffix(interior, ")")

	segments, err := splitSegments(interior)
	if err != nil {
		return Value{}, err
	}

	entries := make([]Entry, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if m := keyPrefix.FindStringSubmatchIndex(segment); m != nil {
			key := segment[m[2]:m[3]]
			entries = append(entries, Keyed(key, Coerce(segment[m[1]:])))
			continue
		}
		entries = append(entries, Positional(Coerce(segment)))
	}

	return Value{kind: GroupKind, entries: entries}, nil
}

// splitSegments splits on commas that are not inside quoted strings
func splitSegments(interior string) ([]string, error) {
	lex, err := argumentLexer.LexString("", interior)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ReasonInvalidArguments, err)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ReasonInvalidArguments, err)
	}

	var (
		segments []string
		current  strings.Builder
	)
	for _, token := range tokens {
		switch {
		case token.EOF():
			segments = append(segments, current.String())
		case token.Type == commaToken:
			segments = append(segments, current.String())
			current.Reset()
		default:
			current.WriteString(token.Value)
		}
	}
	return segments, nil
}

// parseInline handles text following a tag on the same line
func parseInline(args string) Value {
	text := strings.TrimSpace(args)
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return String(text)
}
