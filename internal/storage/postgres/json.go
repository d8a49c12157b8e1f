package postgres

import (
	"reflect"

	"github.com/goccy/go-json"
)

// toJSONB encodes v as a query argument for a nullable JSONB column. Nil and
// empty values become NULL.
func toJSONB(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
	case reflect.Map, reflect.Slice:
		if rv.Len() == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// fromJSONB decodes a nullable JSONB column into dst; NULL leaves dst
// untouched.
func fromJSONB(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
