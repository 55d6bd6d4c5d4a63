package entity

import (
	"fmt"

	"github.com/toyz/entitydoc/internal/annotations"
)

// Tags the validator and resolver look at
const (
	TagVar     = "var"
	TagColumn  = "column"
	TagJoin    = "join"
	TagID      = "id"
	TagInherit = "inherit"

	joinEntityKey = "entity"
)

// DefaultPropertyTypes are the values @var may take on a mapped property
var DefaultPropertyTypes = []string{"array", "bool", "int", "integer", "string", "float", "null"}

// PropertyValidator decides which properties carry usable mapping metadata
type PropertyValidator struct {
	types map[string]bool
}

// NewPropertyValidator creates a validator accepting the given @var types,
// or DefaultPropertyTypes when none are given.
func NewPropertyValidator(types ...string) *PropertyValidator {
	if len(types) == 0 {
		types = DefaultPropertyTypes
	}
	v := &PropertyValidator{types: make(map[string]bool, len(types))}
	for _, t := range types {
		v.types[t] = true
	}
	return v
}

// Accept reports whether a property's annotations qualify it for mapping.
// A property needs a whitelisted @var type plus either @column or a @join
// naming an entity. When rejected, reason says why.
func (v *PropertyValidator) Accept(m *annotations.Map) (ok bool, reason string) {
	varValue, present := m.Get(TagVar)
	if !present {
		return false, "no @var tag"
	}
	typeName, isString := varValue.Str()
	if !isString || !v.types[typeName] {
		return false, fmt.Sprintf("@var %s is not a mapped type", varValue)
	}

	if m.Has(TagColumn) {
		return true, ""
	}
	if join, present := m.Get(TagJoin); present {
		if _, hasEntity := join.Lookup(joinEntityKey); hasEntity {
			return true, ""
		}
	}
	return false, "neither @column nor @join with an entity"
}

// IsPrimaryKey reports whether the property declares @id
func IsPrimaryKey(m *annotations.Map) bool {
	return m.Has(TagID)
}
