package remote

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode maps a loosely typed JSON payload onto a struct tagged with `mapstructure`.
// Input is weakly typed so "1234" decodes into an int and missing keys keep zero values.
// A field whose value has the wrong shape (an array where an object or a
// scalar is expected, a non-numeric string for a number) is left at its zero
// value instead of failing the whole payload.
func Decode(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       tolerateShapes,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// DecodeEach decodes every object of a JSON array into a T.
// Elements that are not objects or fail to decode are skipped.
func DecodeEach[T any](items []any) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var v T
		if err := Decode(m, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// tolerateShapes replaces values that cannot become the target type with the
// target's zero value.
func tolerateShapes(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Struct:
		if from.Kind() != reflect.Map {
			return map[string]any{}, nil
		}
	case reflect.String:
		switch from.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return "", nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		switch from.Kind() {
		case reflect.Map, reflect.Slice, reflect.Array:
			return 0, nil
		case reflect.String:
			s := strings.ReplaceAll(strings.TrimSpace(reflect.ValueOf(data).String()), ",", "")
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, nil
			}
			return f, nil
		}
	}
	return data, nil
}
