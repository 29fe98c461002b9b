package toml

import (
	"fmt"
	"reflect"
	"strings"
)

// Unmarshal parses data and decodes it into the value pointed to by v
// Keys absent from data leave the target fields untouched, so defaults survive
func Unmarshal(data []byte, v any) error {
	tree, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode copies a parsed tree into v using `toml:"name"` tags
// Untagged fields match their Go name; tag "-" skips the field
func Decode(tree map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeInto(tree, rv.Elem())
}

func decodeInto(data any, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return decodeInto(data, dst.Elem())

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		return decodeStruct(table, dst)

	case reflect.Map:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}
		if dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("map key must be string, got %s", dst.Type().Key())
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMapWithSize(dst.Type(), len(table)))
		}
		for k, item := range table {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeInto(item, elem); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			dst.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
		}

	case reflect.Slice:
		items, ok := data.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %T", data)
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(item, out.Index(i)); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		dst.Set(out)

	case reflect.Interface:
		dst.Set(reflect.ValueOf(data))

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", data)
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", data)
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := data.(int)
		if !ok {
			return fmt.Errorf("expected integer, got %T", data)
		}
		if dst.OverflowInt(int64(i)) {
			return fmt.Errorf("integer %d overflows %s", i, dst.Type())
		}
		dst.SetInt(int64(i))

	case reflect.Float32, reflect.Float64:
		switch n := data.(type) {
		case float64:
			dst.SetFloat(n)
		case int:
			dst.SetFloat(float64(n))
		default:
			return fmt.Errorf("expected number, got %T", data)
		}

	default:
		return fmt.Errorf("unsupported target type %s", dst.Type())
	}
	return nil
}

func decodeStruct(table map[string]any, dst reflect.Value) error {
	typ := dst.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("toml"); ok {
			name, _, _ = strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
		}

		item, ok := table[name]
		if !ok {
			continue
		}
		if err := decodeInto(item, dst.Field(i)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
