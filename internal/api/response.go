package api

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/url"
	"strings"
)

// DecodeBody decodes a raw response body according to its declared
// content type. JSON bodies become maps, slices and primitives; form bodies
// become a map of strings. Any other or missing content type yields the raw
// body as a string.
func DecodeBody(contentType string, raw []byte) (any, error) {
	mediaType := mediaTypeOf(contentType)

	switch {
	case strings.Contains(mediaType, "json"):
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, &DecodingError{ContentType: mediaType, Body: string(raw), Err: err}
		}
		return v, nil

	case mediaType == ContentTypeForm:
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, &DecodingError{ContentType: mediaType, Body: string(raw), Err: err}
		}
		return formToMap(values), nil
	}

	return string(raw), nil
}

func mediaTypeOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to the part before any parameters.
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func formToMap(values url.Values) map[string]any {
	m := make(map[string]any, len(values))
	for k, vv := range values {
		if len(vv) == 1 {
			m[k] = vv[0]
			continue
		}
		list := make([]any, len(vv))
		for i, v := range vv {
			list[i] = v
		}
		m[k] = list
	}
	return m
}
