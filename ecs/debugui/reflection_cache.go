package debugui

import (
	"reflect"
	"sync"
)

// componentField describes one exported field of an inspected component type.
type componentField struct {
	Name    string
	index   int
	pointer bool
}

// value resolves the field on a struct value, dereferencing pointer fields.
// ok is false for a nil pointer field.
func (f componentField) value(structVal reflect.Value) (val reflect.Value, ok bool) {
	v := structVal.Field(f.index)
	if f.pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, true
}

// fieldCache memoizes per-type field metadata so the inspector does not
// re-walk struct types every frame.
type fieldCache struct {
	mu    sync.RWMutex
	types map[reflect.Type][]componentField
}

var inspectorFields = &fieldCache{types: make(map[reflect.Type][]componentField)}

func (c *fieldCache) fieldsOf(t reflect.Type) []componentField {
	c.mu.RLock()
	cached, ok := c.types[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.types[t]; ok {
		return cached
	}

	var fields []componentField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fields = append(fields, componentField{
			Name:    field.Name,
			index:   i,
			pointer: field.Type.Kind() == reflect.Pointer,
		})
	}
	c.types[t] = fields
	return fields
}
