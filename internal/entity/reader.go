package entity

import (
	"github.com/toyz/entitydoc/internal/annotations"
	"github.com/toyz/entitydoc/internal/errors"
)

// Logger receives debug traces about annotations that were dropped.
// utils.DiagnosticSystem satisfies it.
type Logger interface {
	Debug(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}

// Option configures a Reader
type Option func(*Reader)

// WithLogger sets the logger used for debug traces
func WithLogger(logger Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTypeWhitelist replaces the accepted @var types
func WithTypeWhitelist(types ...string) Option {
	return func(r *Reader) {
		r.validator = NewPropertyValidator(types...)
	}
}

// WithInheritTag changes the tag a class uses to opt into inheritance
func WithInheritTag(tag string) Option {
	return func(r *Reader) {
		if tag != "" {
			r.inheritTag = tag
		}
	}
}

// Reader resolves entity annotations through an Introspector. It holds no
// per-call state and is safe for concurrent use when the introspector is.
type Reader struct {
	introspector Introspector
	validator    *PropertyValidator
	logger       Logger
	inheritTag   string
}

// NewReader creates a reader over introspector
func NewReader(introspector Introspector, opts ...Option) *Reader {
	r := &Reader{
		introspector: introspector,
		validator:    NewPropertyValidator(),
		logger:       nopLogger{},
		inheritTag:   TagInherit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the complete entity metadata for classID: its merged class
// annotations, the properties that pass validation and the primary key.
func (r *Reader) Resolve(classID string) (*EntityAnnotations, error) {
	class, err := r.ResolveClass(classID)
	if err != nil {
		return nil, err
	}

	sources, err := r.introspector.PropertiesOf(classID)
	if err != nil {
		return nil, errors.NewUnresolvableClassError(classID, nil,
			errors.WrapIntrospectionError("properties", classID, err))
	}

	result := &EntityAnnotations{
		ClassName:  classID,
		Class:      class.Merged,
		Properties: make(Properties, 0, len(sources)),
	}

	for _, source := range sources {
		parsed := r.parse(classID+"."+source.Name, source.Comment)
		if ok, reason := r.validator.Accept(parsed); !ok {
			r.logger.Debug("%s.%s: property skipped: %s", classID, source.Name, reason)
			continue
		}

		result.Properties = setProperty(result.Properties, Property{Name: source.Name, Annotations: parsed})
		if IsPrimaryKey(parsed) {
			if result.PrimaryKey != "" && result.PrimaryKey != source.Name {
				r.logger.Debug("%s: primary key %s replaced by %s", classID, result.PrimaryKey, source.Name)
			}
			result.PrimaryKey = source.Name
		} else if result.PrimaryKey == source.Name {
			result.PrimaryKey = ""
		}
	}

	return result, nil
}

// ResolveClass builds the class-level annotations for classID, merging the
// parent chain for as long as each class asks to inherit.
func (r *Reader) ResolveClass(classID string) (*ClassAnnotations, error) {
	return r.resolveClass(classID, nil)
}

func (r *Reader) resolveClass(classID string, chain []string) (*ClassAnnotations, error) {
	for _, seen := range chain {
		if seen == classID {
			return nil, errors.NewInheritanceCycleError(classID, append(chain, classID))
		}
	}

	comment, err := r.introspector.OwnComment(classID)
	if err != nil {
		return nil, errors.NewUnresolvableClassError(classID, chain, err)
	}
	parent, hasParent, err := r.introspector.ParentOf(classID)
	if err != nil {
		return nil, errors.NewUnresolvableClassError(classID, chain,
			errors.WrapIntrospectionError("parent", classID, err))
	}

	own := r.parse(classID, comment)
	class := &ClassAnnotations{
		ClassName: classID,
		Own:       own,
		Merged:    own,
	}
	if hasParent {
		class.Extends = parent
	}

	inherit, requested := own.Get(r.inheritTag)
	if !requested || !inherit.Truthy() || !hasParent {
		return class, nil
	}

	ancestor, err := r.resolveClass(parent, append(chain, classID))
	if err != nil {
		return nil, err
	}
	class.Merged = DeepMerge(own, ancestor.Merged)
	return class, nil
}

func (r *Reader) parse(subject, comment string) *annotations.Map {
	result := annotations.Parse(comment)
	for _, miss := range result.Misses {
		r.logger.Debug("%s: %s", subject, miss.Error())
	}
	return result.Map
}

// setProperty appends prop, or replaces an earlier property of the same name
func setProperty(props Properties, prop Property) Properties {
	for i := range props {
		if props[i].Name == prop.Name {
			props[i] = prop
			return props
		}
	}
	return append(props, prop)
}
