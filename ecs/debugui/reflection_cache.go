package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name     string
	Index    int
	Kind     reflect.Kind
	Editable bool
}

// ReflectionCache memoizes the exported fields of component struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			kind := field.Type.Kind()
			fields = append(fields, FieldInfo{
				Name:     field.Name,
				Index:    i,
				Kind:     kind,
				Editable: isEditable(kind),
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

func isEditable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	default:
		return false
	}
}

var globalReflectionCache = NewReflectionCache()
