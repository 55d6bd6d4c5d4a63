package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseErrorMessage(t *testing.T) {
	err := New(SyntaxErrorCode, "tag @table dropped")
	assert.Equal(t, "tag @table dropped", err.Error())

	err.WithLocation(SourceLocation{File: "user.go", Line: 4, Column: 2})
	assert.Equal(t, "user.go:4:2: tag @table dropped", err.Error())

	err.WithCause(fmt.Errorf("unterminated group"))
	assert.Equal(t, "user.go:4:2: tag @table dropped: unterminated group", err.Error())
}

func TestSourceLocationString(t *testing.T) {
	assert.Equal(t, "unknown location", SourceLocation{}.String())
	assert.Equal(t, "a.go", SourceLocation{File: "a.go"}.String())
	assert.Equal(t, "a.go:3", SourceLocation{File: "a.go", Line: 3}.String())
	assert.True(t, SourceLocation{Line: 3}.IsEmpty())
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "ResolutionError", ResolutionErrorCode.String())
	assert.Equal(t, "IntrospectionError", IntrospectionErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestBaseErrorContextAndSuggestions(t *testing.T) {
	err := Newf(ValidationErrorCode, "bad %s", "type").
		WithContext("tag", "var").
		WithSuggestion("use a mapped type")

	assert.Equal(t, "bad type", err.Error())
	assert.Equal(t, "var", err.Context()["tag"])
	assert.Equal(t, []string{"use a mapped type"}, err.Suggestions())
	assert.Equal(t, ValidationErrorCode, err.ErrorCode())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := WrapFileSystemError("read", "/tmp/x.go", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.Equal(t, "/tmp/x.go", err.Context()["path"])
	assert.Contains(t, err.Error(), "failed to read file '/tmp/x.go': permission denied")
}

func TestUnresolvableClassError(t *testing.T) {
	cause := fmt.Errorf("struct %q: %w", "Missing", ErrClassNotFound)
	err := NewUnresolvableClassError("Missing", []string{"Leaf", "Middle"}, cause)

	assert.Equal(t, "Missing", err.ClassID)
	assert.Equal(t, []string{"Leaf", "Middle"}, err.Chain)
	assert.Equal(t, ResolutionErrorCode, err.ErrorCode())
	assert.Contains(t, err.Error(), "cannot resolve class 'Missing' (via Leaf -> Middle)")
	require.ErrorIs(t, err, ErrClassNotFound)

	var unresolvable *UnresolvableClassError
	wrapped := fmt.Errorf("resolve: %w", err)
	require.ErrorAs(t, wrapped, &unresolvable)
	assert.Same(t, err, unresolvable)
}

func TestUnresolvableClassErrorCopiesChain(t *testing.T) {
	chain := []string{"A"}
	err := NewUnresolvableClassError("B", chain, nil)
	chain[0] = "changed"
	assert.Equal(t, []string{"A"}, err.Chain)
}

func TestInheritanceCycleError(t *testing.T) {
	err := NewInheritanceCycleError("A", []string{"A", "B", "A"})

	assert.Equal(t, "inheritance cycle detected at class 'A' (via A -> B -> A)", err.Error())
	assert.NotErrorIs(t, err, ErrClassNotFound)
	assert.Len(t, err.Suggestions(), 1)
}

func TestMultipleErrors(t *testing.T) {
	var multiple *MultipleErrors
	assert.NoError(t, multiple.ErrorOrNil())

	AddToMultiple(&multiple, New(ConfigurationErrorCode, "first"))
	require.NotNil(t, multiple)
	assert.Equal(t, "first", multiple.Error())

	AddToMultiple(&multiple, NewUnresolvableClassError("Ghost", nil, ErrClassNotFound))
	assert.Equal(t, 2, multiple.Count())
	assert.False(t, multiple.IsEmpty())
	assert.True(t, multiple.HasCode(ResolutionErrorCode))
	assert.False(t, multiple.HasCode(SyntaxErrorCode))
	assert.Contains(t, multiple.Error(), "multiple errors (2 total)")

	err := multiple.ErrorOrNil()
	require.ErrorIs(t, err, ErrClassNotFound)

	var unresolvable *UnresolvableClassError
	require.ErrorAs(t, err, &unresolvable)
	assert.Equal(t, "Ghost", unresolvable.ClassID)

	assert.NoError(t, NewMultipleErrors().ErrorOrNil())
}

func TestErrClassNotFoundIsImmutableSentinel(t *testing.T) {
	_, isBase := ErrClassNotFound.(*BaseError)
	assert.False(t, isBase)

	err := NewUnresolvableClassError("Ghost", nil, ErrClassNotFound)
	err.WithContext("package", "model").WithSuggestion("load the model package")

	assert.Equal(t, "class not found", ErrClassNotFound.Error())
	require.ErrorIs(t, err, ErrClassNotFound)
	assert.Equal(t, "cannot resolve class 'Ghost': class not found", err.Error())
}
