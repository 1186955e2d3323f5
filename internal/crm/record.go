package crm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one query result row. The decoded field values live in
// Fields; Order keeps the top-level keys in wire order so tables can
// lay out columns the way the query listed them.
type Record struct {
	Fields map[string]any
	Order  []string
}

// Get returns the named field value, or nil when the record lacks it.
func (r Record) Get(key string) any {
	return r.Fields[key]
}

// Has reports whether the record carries the named field.
func (r Record) Has(key string) bool {
	_, ok := r.Fields[key]
	return ok
}

func (r *Record) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Fields); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record is not an object")
	}

	r.Order = r.Order[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record key is not a string")
		}
		r.Order = append(r.Order, key)
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	return nil
}

// skipValue consumes one JSON value from the decoder, descending
// through nested objects and arrays.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
