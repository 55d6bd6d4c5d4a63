package annotations

import (
	"fmt"

	"github.com/toyz/entitydoc/internal/errors"
)

// Reasons a tag occurrence can fail to match
const (
	ReasonUnterminatedGroup = "unterminated argument list"
	ReasonUnterminatedQuote = "unterminated quoted string"
	ReasonInvalidArguments  = "invalid argument list"
)

// SyntaxError describes a tag occurrence that was dropped because its
// argument text could not be matched. It never aborts extraction.
type SyntaxError struct {
	*errors.BaseError
	Tag    string // tag name the occurrence belonged to
	Offset int    // byte offset of the '@' in the normalized text
	Reason string // one of the Reason constants
}

// NewSyntaxError creates a syntax miss for tag at offset within text
func NewSyntaxError(tag, reason, text string, offset int) *SyntaxError {
	line, column := position(text, offset)
	base := errors.New(errors.SyntaxErrorCode, fmt.Sprintf("tag @%s dropped: %s", tag, reason)).
		WithContext("tag", tag).
		WithContext("line", line).
		WithContext("column", column)

	switch reason {
	case ReasonUnterminatedGroup:
		base.WithSuggestion(fmt.Sprintf("Close the argument list of @%s with ')'", tag))
	case ReasonUnterminatedQuote:
		base.WithSuggestion("Close the quoted string or escape the quote character with a backslash")
	}

	return &SyntaxError{
		BaseError: base,
		Tag:       tag,
		Offset:    offset,
		Reason:    reason,
	}
}

// Line returns the 1-based line of the dropped occurrence
func (e *SyntaxError) Line() int {
	line, _ := e.ContextData["line"].(int)
	return line
}

// position converts a byte offset to a 1-based line and column
func position(text string, offset int) (line, column int) {
	line, column = 1, 1
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}
