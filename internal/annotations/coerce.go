package annotations

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coerce converts a single argument token into a value, trying in order:
// a quoted string literal, a JSON number or true/false/null, the barewords
// true/false, and finally the trimmed text itself.
func Coerce(token string) Value {
	text := strings.TrimSpace(token)

	if s, ok := unquote(text); ok {
		return String(s)
	}
	if v, ok := jsonLiteral(text); ok {
		return v
	}
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(text)
}

// unquote decodes text when the whole of it is one quoted literal
func unquote(text string) (string, bool) {
	if len(text) < 2 || (text[0] != '"' && text[0] != '\'') {
		return "", false
	}
	if closingQuote(text, 0) != len(text)-1 {
		return "", false
	}

	quote := text[0]
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body, true
	}

	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			out.WriteByte(c)
			continue
		}
		i++
		next := body[i]
		switch {
		case next == quote || next == '\\':
			out.WriteByte(next)
		case quote == '"' && next == 'n':
			out.WriteByte('\n')
		case quote == '"' && next == 't':
			out.WriteByte('\t')
		case quote == '"' && next == 'r':
			out.WriteByte('\r')
		default:
			out.WriteByte('\\')
			out.WriteByte(next)
		}
	}
	return out.String(), true
}

// jsonLiteral accepts a JSON number, true, false or null
func jsonLiteral(text string) (Value, bool) {
	switch text {
	case "null":
		return Null(), true
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "":
		return Value{}, false
	}

	if c := text[0]; c != '-' && (c < '0' || c > '9') {
		return Value{}, false
	}
	if !json.Valid([]byte(text)) {
		return Value{}, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, false
	}
	return numberLiteral(n, text), true
}
