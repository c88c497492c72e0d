package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Record is a snapshot of one document. It is never mutated in place; use
// With to derive a copy carrying a local edit.
type Record struct {
	DocType string
	Name    string
	IsNew   bool
	Fields  map[string]any
}

// NewRecord builds a snapshot from the field map of a document. The name
// is taken from the "name" field; a record without one, or flagged
// "__islocal", has never been saved.
func NewRecord(doctype string, fields map[string]any) Record {
	r := Record{DocType: doctype, Fields: maps.Clone(fields)}
	if r.Fields == nil {
		r.Fields = map[string]any{}
	}
	r.Name, _ = r.Fields["name"].(string)
	r.IsNew = r.Name == "" || truthy(r.Fields["__islocal"])
	return r
}

// Get returns the raw value of field, or nil.
func (r Record) Get(field string) any {
	return r.Fields[field]
}

// Text renders field as a string; absent and null fields are "".
func (r Record) Text(field string) string {
	switch v := r.Fields[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Truthy reports whether field holds a non-empty, non-zero value.
func (r Record) Truthy(field string) bool {
	return truthy(r.Fields[field])
}

// With returns a copy of r with field set to value.
func (r Record) With(field string, value any) Record {
	fields := maps.Clone(r.Fields)
	if fields == nil {
		fields = map[string]any{}
	}
	fields[field] = value
	out := r
	out.Fields = fields
	return out
}

// SecretFields hold credentials issued by the integrations.
var SecretFields = []string{
	"api_key", "api_secret", "auth_token", "access_token",
	"refresh_token", "authorization_code", "client_secret", "password",
}

// SecretMask replaces secret values in stored copies. It is truthy, so a
// masked record still shows the same actions.
const SecretMask = "********"

// Redacted returns a copy of r with every set secret field masked.
func (r Record) Redacted() Record {
	out := r
	out.Fields = maps.Clone(r.Fields)
	for _, f := range SecretFields {
		if truthy(out.Fields[f]) {
			out.Fields[f] = SecretMask
		}
	}
	return out
}

// MarshalFields encodes the field map for storage.
func (r Record) MarshalFields() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// Decode converts r into the typed view T.
func Decode[T any](r Record) (T, error) {
	var out T
	raw, err := json.Marshal(r.Fields)
	if err != nil {
		return out, fmt.Errorf("encode %s %q: %w", r.DocType, r.Name, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s %q: %w", r.DocType, r.Name, err)
	}
	return out, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}
