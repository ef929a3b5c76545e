package debugui

import (
	"reflect"
	"sync"
)

type fieldInfo struct {
	Name  string
	Index int
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// exportedFields lists the exported fields of struct type t, cached per type.
func exportedFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{Name: f.Name, Index: i})
			}
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}
