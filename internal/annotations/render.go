package annotations

import (
	"strconv"
	"strings"
)

// Render writes m back out as a doc comment block using the inline tag form,
// one line per tag occurrence. Lists repeat their tag once per item. Keyed
// groups are written in parenthesized form.
//
// Parsing the output yields a map Equivalent to m as long as string values
// are single-line.
func Render(m *Map) string {
	var b strings.Builder
	b.WriteString("/**\n")
	m.Range(func(name string, value Value) bool {
		if items, ok := value.List(); ok {
			for _, item := range items {
				writeTag(&b, name, item)
			}
			return true
		}
		writeTag(&b, name, value)
		return true
	})
	b.WriteString(" */")
	return b.String()
}

func writeTag(b *strings.Builder, name string, value Value) {
	b.WriteString(" * @")
	b.WriteString(name)
	if text := renderArgument(value); text != "" {
		if !strings.HasPrefix(text, "(") {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	b.WriteByte('\n')
}

func renderArgument(value Value) string {
	switch value.Kind() {
	case BoolKind:
		if value.boolean {
			return ""
		}
		return "false"
	case StringKind:
		return `"` + value.text + `"`
	case NumberKind, NullKind:
		return renderLiteral(value)
	case GroupKind:
		parts := make([]string, len(value.entries))
		for i, e := range value.entries {
			if e.HasKey {
				parts[i] = e.Key + ": " + renderLiteral(e.Value)
			} else {
				parts[i] = renderLiteral(e.Value)
			}
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return renderLiteral(value)
	}
}

// renderLiteral writes a value as it would appear inside an argument list
func renderLiteral(value Value) string {
	switch value.Kind() {
	case BoolKind:
		return strconv.FormatBool(value.boolean)
	case StringKind:
		return strconv.Quote(value.text)
	case NumberKind:
		return value.text
	case NullKind:
		return "null"
	default:
		return strconv.Quote(value.String())
	}
}
