package data

import (
	"sort"
	"strings"
)

// Value is an entity field value: either a scalar or a list of items.
type Value struct {
	scalar string
	items  []string
	isList bool
}

// Scalar creates a scalar field value.
func Scalar(s string) Value {
	return Value{scalar: s}
}

// List creates a list field value.
func List(items ...string) Value {
	return Value{items: append([]string(nil), items...), isList: true}
}

// IsList reports whether the value came from an array field.
func (v Value) IsList() bool {
	return v.isList
}

// Items returns a copy of the list items, or nil for a scalar.
func (v Value) Items() []string {
	if !v.isList {
		return nil
	}
	return append([]string(nil), v.items...)
}

// String renders the value as text. Lists render as ["a","b"].
func (v Value) String() string {
	if !v.isList {
		return v.scalar
	}
	quoted := make([]string, len(v.items))
	for i, item := range v.items {
		quoted[i] = `"` + item + `"`
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// EntityDataObject is an immutable named record of fields and entity links.
type EntityDataObject struct {
	name           string
	entityType     string
	fields         map[string]Value
	linkedEntities map[string]string
}

// NewEntityDataObject builds an entity, lowercasing every field key.
func NewEntityDataObject(name, entityType string, fields map[string]Value, linked map[string]string) *EntityDataObject {
	e := &EntityDataObject{
		name:           name,
		entityType:     entityType,
		fields:         make(map[string]Value, len(fields)),
		linkedEntities: make(map[string]string, len(linked)),
	}
	for k, v := range fields {
		e.fields[strings.ToLower(k)] = v
	}
	for k, v := range linked {
		e.linkedEntities[k] = v
	}
	return e
}

func (e *EntityDataObject) Name() string { return e.name }

func (e *EntityDataObject) Type() string { return e.entityType }

// Field returns the value stored under key, matched case-insensitively.
func (e *EntityDataObject) Field(key string) (Value, bool) {
	v, ok := e.fields[strings.ToLower(key)]
	return v, ok
}

// FieldKeys returns the sorted, lowercased field keys.
func (e *EntityDataObject) FieldKeys() []string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LinkedEntities returns a copy of the linked entity name to type mapping.
func (e *EntityDataObject) LinkedEntities() map[string]string {
	out := make(map[string]string, len(e.linkedEntities))
	for k, v := range e.linkedEntities {
		out[k] = v
	}
	return out
}
