package entity

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/toyz/entitydoc/internal/annotations"
)

// ClassAnnotations holds the annotations of one class
type ClassAnnotations struct {
	ClassName string
	Extends   string // parent class id, empty when there is none
	Own       *annotations.Map
	Merged    *annotations.Map // Own deep-merged over the inherited chain
}

// Property is an accepted property and its annotations
type Property struct {
	Name        string
	Annotations *annotations.Map
}

// Properties keeps accepted properties in declaration order
type Properties []Property

// Get returns the annotations of the named property
func (p Properties) Get(name string) (*annotations.Map, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Annotations, true
		}
	}
	return nil, false
}

// Names returns property names in order
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// MarshalJSON encodes properties as an object in declaration order
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := prop.Annotations.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes properties as a mapping in declaration order
func (p Properties) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, prop := range p {
		value := &yaml.Node{}
		if err := value.Encode(prop.Annotations); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: prop.Name}, value)
	}
	return node, nil
}

// EntityAnnotations is the metadata an entity-mapping layer consumes
type EntityAnnotations struct {
	ClassName  string           `json:"class_name" yaml:"class_name"`
	Class      *annotations.Map `json:"class" yaml:"class"`
	Properties Properties       `json:"properties" yaml:"properties"`
	PrimaryKey string           `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// Property returns the annotations of an accepted property
func (e *EntityAnnotations) Property(name string) (*annotations.Map, bool) {
	return e.Properties.Get(name)
}

// HasPrimaryKey reports whether any accepted property declared @id
func (e *EntityAnnotations) HasPrimaryKey() bool {
	return e.PrimaryKey != ""
}
