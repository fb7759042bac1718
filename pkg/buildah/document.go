package buildah

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Document is the structured metadata the engine's inspect command prints.
// There is no fixed schema across engine versions, so access is defensive:
// absent keys are reported, never raised.
type Document map[string]interface{}

// ParseDocument parses raw inspect output.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing metadata document")
	}
	return doc, nil
}

// At walks nested objects along path and returns the value found there.
func (d Document) At(path ...string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(d)

	for _, key := range path {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// StringAt is At for string-valued fields. Non-string values report absent.
func (d Document) StringAt(path ...string) (string, bool) {
	v, ok := d.At(path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringsAt is At for lists of strings. Entries of other types are skipped.
func (d Document) StringsAt(path ...string) ([]string, bool) {
	v, ok := d.At(path...)
	if !ok {
		return nil, false
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, false
	}

	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
