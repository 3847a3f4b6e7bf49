package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// FromValue builds a Tree from nested dynamic values: any Go number or
// json.Number becomes a Leaf and any non-empty slice or array becomes a
// Branch. Existing trees are validated and returned as is.
func FromValue(v any) (Tree, error) {
	return fromValue(v, "$")
}

// Validate checks that every node of t is either a Leaf with a finite value
// or a non-empty Branch.
func Validate(t Tree) error {
	return validate(t, "$")
}

func validate(t Tree, path string) error {
	switch t := t.(type) {
	case Leaf:
		_, err := leaf(float64(t), path)
		return err
	case Branch:
		if len(t) == 0 {
			return fmt.Errorf("%w: empty branch at %s", ErrInvalidTreeShape, path)
		}
		for i, child := range t {
			if err := validate(child, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return fmt.Errorf("%w: nil node at %s", ErrInvalidTreeShape, path)
	default:
		return fmt.Errorf("%w: unknown node type %T at %s", ErrInvalidTreeShape, t, path)
	}
}

// Parse builds a Tree from JSON text such as [[3,5],[6,9]].
func Parse(data []byte) (Tree, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTreeShape, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after tree", ErrInvalidTreeShape)
	}
	return FromValue(v)
}

func fromValue(v any, path string) (Tree, error) {
	switch v := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil node at %s", ErrInvalidTreeShape, path)
	case Tree:
		if err := validate(v, path); err != nil {
			return nil, err
		}
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v at %s", ErrInvalidTreeShape, err, path)
		}
		return leaf(f, path)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return leaf(float64(rv.Int()), path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return leaf(float64(rv.Uint()), path)
	case reflect.Float32, reflect.Float64:
		return leaf(rv.Float(), path)
	case reflect.Slice, reflect.Array:
		return fromSlice(rv, path)
	default:
		return nil, fmt.Errorf("%w: %T is neither a number nor a list at %s", ErrInvalidTreeShape, v, path)
	}
}

func fromSlice(rv reflect.Value, path string) (Tree, error) {
	if rv.Len() == 0 {
		return nil, fmt.Errorf("%w: empty branch at %s", ErrInvalidTreeShape, path)
	}
	children := make(Branch, rv.Len())
	for i := range children {
		child, err := fromValue(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}

// Leaf values must stay strictly inside the search window sentinels.
func leaf(f float64, path string) (Tree, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: non-finite value %v at %s", ErrInvalidTreeShape, f, path)
	}
	return Leaf(f), nil
}
