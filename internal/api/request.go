package api

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
)

// Content types understood by the pipeline.
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// RequestType selects how request bodies are encoded.
type RequestType string

const (
	// RequestTypeForm encodes bodies as application/x-www-form-urlencoded.
	RequestTypeForm RequestType = "form"
	// RequestTypeJSON encodes bodies as application/json.
	RequestTypeJSON RequestType = "json"
	// RequestTypeRaw sends string and []byte bodies unchanged.
	RequestTypeRaw RequestType = "raw"
)

// ErrUnknownRequestType is returned for a RequestType outside the known set.
var ErrUnknownRequestType = errors.New("unknown request type")

// Valid reports whether t is one of the known request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeForm, RequestTypeJSON, RequestTypeRaw:
		return true
	}
	return false
}

// EncodeBody serializes body for the wire and returns the encoded bytes and
// the content type to send with them. A nil body is encoded as an empty
// mapping so body-carrying methods never send a null payload. Typed nil
// maps, slices and pointers count as nil.
func EncodeBody(t RequestType, body any) ([]byte, string, error) {
	if isNil(body) {
		body = nil
	}

	switch t {
	case RequestTypeForm:
		if raw, ok := scalarBody(body); ok {
			return raw, ContentTypeForm, nil
		}
		values, err := EncodeParams(body)
		if err != nil {
			return nil, "", err
		}
		return []byte(values.Encode()), ContentTypeForm, nil

	case RequestTypeJSON:
		if raw, ok := scalarBody(body); ok {
			return raw, ContentTypeJSON, nil
		}
		if body == nil {
			body = map[string]any{}
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
		return data, ContentTypeJSON, nil

	case RequestTypeRaw:
		if body == nil {
			return []byte{}, "", nil
		}
		if raw, ok := scalarBody(body); ok {
			return raw, "", nil
		}
		return nil, "", fmt.Errorf("raw request body must be string or []byte, got %T", body)
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownRequestType, t)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func scalarBody(body any) ([]byte, bool) {
	switch b := body.(type) {
	case string:
		return []byte(b), true
	case []byte:
		return b, true
	}
	return nil, false
}

// EncodeParams flattens a mapping or struct into url.Values. Nested
// mappings become "key[sub]" and sequences become "key[]", the convention
// the API uses for both query strings and form bodies. Structs are mapped
// through their json tags.
func EncodeParams(v any) (url.Values, error) {
	values := url.Values{}
	if isNil(v) {
		return values, nil
	}

	switch p := v.(type) {
	case url.Values:
		for k, vv := range p {
			values[k] = append([]string(nil), vv...)
		}
		return values, nil
	case map[string]string:
		for k, s := range p {
			values.Set(k, s)
		}
		return values, nil
	}

	m, err := toMap(v)
	if err != nil {
		return nil, err
	}
	for _, k := range sortedKeys(m) {
		if err := flatten(values, k, m[k]); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func toMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported parameter map key type %s", rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return m, nil
	case reflect.Struct:
		return structToMap(rv.Interface())
	}
	return nil, fmt.Errorf("unsupported parameter type %T", v)
}

// structToMap maps a struct through its json tags. Fields that marshal
// themselves, such as time.Time, keep their JSON text form.
func structToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to map parameters: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to map parameters: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func flatten(values url.Values, key string, v any) error {
	if v == nil {
		values.Add(key, "")
		return nil
	}

	rv := reflect.ValueOf(v)
	for {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			values.Add(key, "")
			return nil
		}
		text, ok, err := textValue(rv)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		if ok {
			values.Add(key, text)
			return nil
		}
		if rv.Kind() != reflect.Pointer {
			break
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		m, err := toMap(rv.Interface())
		if err != nil {
			return err
		}
		for _, k := range sortedKeys(m) {
			if err := flatten(values, key+"["+k+"]", m[k]); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice, reflect.Array:
		if b, ok := rv.Interface().([]byte); ok {
			values.Add(key, string(b))
			return nil
		}
		if rv.Len() == 0 {
			values.Add(key+"[]", "")
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := flatten(values, key+"[]", rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	values.Add(key, formatScalar(rv.Interface()))
	return nil
}

// textValue reports the text form of values that render themselves:
// encoding.TextMarshaler of any kind, and fmt.Stringer structs.
func textValue(rv reflect.Value) (string, bool, error) {
	switch t := rv.Interface().(type) {
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		return string(b), true, err
	case fmt.Stringer:
		if rv.Kind() == reflect.Struct {
			return t.String(), true, nil
		}
	}
	return "", false, nil
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
