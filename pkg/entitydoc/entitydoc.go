// Package entitydoc reads mapping metadata from @tag annotations in doc
// comments.
//
// A class (in Go, a struct type) declares its table and other class-level
// settings in its own comment and may opt into its parent's settings with
// @inherit. Each property declares its type with @var and its storage with
// @column or @join:
//
//	// User is a registered account.
//	//
//	// @inherit
//	// @table users
//	type User struct {
//		Model
//
//		// @var int
//		// @column id
//		// @id
//		ID int
//
//		// @var array
//		// @join(entity: "Address", table: "addresses", field: "user_id")
//		Addresses []Address
//	}
//
// Properties without a mapped @var type, or without @column or a joined
// entity, are left out of the result.
package entitydoc

import (
	"github.com/toyz/entitydoc/internal/annotations"
	"github.com/toyz/entitydoc/internal/cache"
	"github.com/toyz/entitydoc/internal/entity"
	"github.com/toyz/entitydoc/internal/errors"
	"github.com/toyz/entitydoc/internal/goast"
)

type (
	// Value is the parsed argument of one annotation
	Value = annotations.Value
	// Entry is one element of a keyed group value
	Entry = annotations.Entry
	// Kind identifies the variant held by a Value
	Kind = annotations.Kind
	// Map holds the annotations of one comment block
	Map = annotations.Map

	// EntityAnnotations is the resolved metadata of a class
	EntityAnnotations = entity.EntityAnnotations
	// ClassAnnotations is the class-level part of the metadata
	ClassAnnotations = entity.ClassAnnotations
	// Property is an accepted property and its annotations
	Property = entity.Property

	// Introspector supplies comments and class structure
	Introspector = entity.Introspector
	// PropertySource is a declared property and its comment
	PropertySource = entity.PropertySource
	// ClassSource describes a class for the static introspector
	ClassSource = entity.ClassSource

	// Reader resolves entity metadata through an Introspector
	Reader = entity.Reader
	// Option configures a Reader
	Option = entity.Option
	// Logger receives debug traces about dropped annotations
	Logger = entity.Logger

	// CachedReader memoizes resolution per class
	CachedReader = cache.Reader

	// UnresolvableClassError is returned for unknown classes and broken parent chains
	UnresolvableClassError = errors.UnresolvableClassError
)

const (
	BoolKind   = annotations.BoolKind
	StringKind = annotations.StringKind
	NumberKind = annotations.NumberKind
	NullKind   = annotations.NullKind
	ListKind   = annotations.ListKind
	GroupKind  = annotations.GroupKind
)

// ErrClassNotFound matches every resolution failure caused by an unknown class
var ErrClassNotFound = errors.ErrClassNotFound

var (
	WithLogger        = entity.WithLogger
	WithTypeWhitelist = entity.WithTypeWhitelist
	WithInheritTag    = entity.WithInheritTag
)

// NewReader creates a reader over introspector
func NewReader(introspector Introspector, opts ...Option) *Reader {
	return entity.NewReader(introspector, opts...)
}

// NewCachedReader creates a reader whose results are memoized per class id
func NewCachedReader(introspector Introspector, opts ...Option) *CachedReader {
	return cache.NewReader(entity.NewReader(introspector, opts...))
}

// NewStaticIntrospector creates an in-memory introspector
func NewStaticIntrospector(classes ...ClassSource) *entity.StaticIntrospector {
	return entity.NewStaticIntrospector(classes...)
}

// NewGoSourceIntrospector creates an introspector over Go struct types.
// Load packages with its LoadDir, LoadFile or LoadSource methods.
func NewGoSourceIntrospector() *goast.Introspector {
	return goast.NewIntrospector()
}

// Parse extracts the annotations of a single comment block
func Parse(comment string) *Map {
	return annotations.ParseMap(comment)
}

// Render writes an annotation map back out as a comment block
func Render(m *Map) string {
	return annotations.Render(m)
}
