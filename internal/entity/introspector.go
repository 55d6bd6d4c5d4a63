package entity

import (
	"fmt"
	"sync"

	"github.com/toyz/entitydoc/internal/errors"
)

// PropertySource is a declared property and its raw doc comment
type PropertySource struct {
	Name    string
	Comment string
}

// Introspector supplies the raw material for resolution: comment text and
// class structure. Implementations report unknown classes with an error
// wrapping errors.ErrClassNotFound.
type Introspector interface {
	// OwnComment returns the class's own doc comment, possibly empty
	OwnComment(classID string) (string, error)

	// ParentOf returns the parent class, if any
	ParentOf(classID string) (parent string, ok bool, err error)

	// PropertiesOf returns the class's properties in declaration order
	PropertiesOf(classID string) ([]PropertySource, error)
}

// ClassSource describes one class held by a StaticIntrospector
type ClassSource struct {
	ID         string
	Comment    string
	Parent     string
	Properties []PropertySource
}

// StaticIntrospector is an in-memory Introspector, useful for class
// hierarchies built by hand or loaded from another source.
type StaticIntrospector struct {
	mu      sync.RWMutex
	classes map[string]ClassSource
}

// NewStaticIntrospector creates an introspector holding the given classes
func NewStaticIntrospector(classes ...ClassSource) *StaticIntrospector {
	s := &StaticIntrospector{classes: make(map[string]ClassSource, len(classes))}
	for _, class := range classes {
		s.Add(class)
	}
	return s
}

// Add registers or replaces a class
func (s *StaticIntrospector) Add(class ClassSource) {
	s.mu.Lock()
	defer s.mu.Unlock()

	props := make([]PropertySource, len(class.Properties))
	copy(props, class.Properties)
	class.Properties = props
	s.classes[class.ID] = class
}

// Classes returns the ids of all registered classes
func (s *StaticIntrospector) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.classes))
	for id := range s.classes {
		ids = append(ids, id)
	}
	return ids
}

func (s *StaticIntrospector) lookup(classID string) (ClassSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	class, ok := s.classes[classID]
	if !ok {
		return ClassSource{}, fmt.Errorf("class %q: %w", classID, errors.ErrClassNotFound)
	}
	return class, nil
}

// OwnComment implements Introspector
func (s *StaticIntrospector) OwnComment(classID string) (string, error) {
	class, err := s.lookup(classID)
	if err != nil {
		return "", err
	}
	return class.Comment, nil
}

// ParentOf implements Introspector
func (s *StaticIntrospector) ParentOf(classID string) (string, bool, error) {
	class, err := s.lookup(classID)
	if err != nil {
		return "", false, err
	}
	return class.Parent, class.Parent != "", nil
}

// PropertiesOf implements Introspector
func (s *StaticIntrospector) PropertiesOf(classID string) ([]PropertySource, error) {
	class, err := s.lookup(classID)
	if err != nil {
		return nil, err
	}
	props := make([]PropertySource, len(class.Properties))
	copy(props, class.Properties)
	return props, nil
}
