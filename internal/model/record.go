package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// Record is an ordered mapping from field name to a scalar value.
// Values are string, int64, float64, bool or nil.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// Dataset is an ordered sequence of records
type Dataset []*Record

// NewRecord creates a record from alternating key/value pairs
func NewRecord(kv ...interface{}) *Record {
	r := &Record{values: make(map[string]interface{}, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("record key at position %d is %T, not string", i, kv[i]))
		}
		v, err := NormalizeScalar(kv[i+1])
		if err != nil {
			panic(fmt.Sprintf("record value for %q: %v", key, err))
		}
		r.Set(key, v)
	}
	return r
}

// Get returns the value stored under key
func (r *Record) Get(key string) (interface{}, bool) {
	if r == nil || r.values == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the field names in insertion order
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Clone returns a copy that shares no state with r
func (r *Record) Clone() *Record {
	c := &Record{
		keys:   r.Keys(),
		values: make(map[string]interface{}, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Map returns the values as an unordered map, used as an expression environment
func (r *Record) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k]
	}
	return out
}

// SameShape reports whether both records carry the same key set, ignoring order
func (r *Record) SameShape(other *Record) bool {
	if r.Len() != other.Len() {
		return false
	}
	for _, k := range r.keys {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the record as a JSON object in key order
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %s: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat JSON object, keeping field order
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	rec, err := decodeRecord(dec)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// MarshalYAML writes the record as a YAML mapping in key order
func (r *Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var val yaml.Node
		if err := val.Encode(r.values[k]); err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// DecodeDataset parses a JSON array of flat objects, or a single object, into a dataset
func DecodeDataset(data []byte) (Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	switch tok {
	case json.Delim('['):
		out := make(Dataset, 0)
		for dec.More() {
			open, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", len(out), err)
			}
			if open != json.Delim('{') {
				return nil, fmt.Errorf("record %d: %w: expected object, got %v", len(out), ErrTypeMismatch, open)
			}
			rec, err := decodeFields(dec)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", len(out), err)
			}
			out = append(out, rec)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read data: %w", err)
		}
		return out, trailing(dec)
	case json.Delim('{'):
		rec, err := decodeFields(dec)
		if err != nil {
			return nil, fmt.Errorf("record 0: %w", err)
		}
		return Dataset{rec}, trailing(dec)
	default:
		return nil, fmt.Errorf("%w: data must be an array of objects", ErrTypeMismatch)
	}
}

// Clone deep-copies every record
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, r := range d {
		out[i] = r.Clone()
	}
	return out
}

// First returns the first record or nil for an empty dataset
func (d Dataset) First() *Record {
	if len(d) == 0 {
		return nil
	}
	return d[0]
}

// NormalizeScalar converts decoded values into the record scalar set
func NormalizeScalar(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil, string, bool, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %s", ErrTypeMismatch, t)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %T", ErrTypeMismatch, v)
	}
}

func decodeRecord(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("%w: expected object, got %v", ErrTypeMismatch, tok)
	}
	return decodeFields(dec)
}

// decodeFields reads key/value pairs after an opening brace through the closing brace
func decodeFields(dec *json.Decoder) (*Record, error) {
	rec := &Record{values: make(map[string]interface{})}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrTypeMismatch, tok)
		}
		val, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := val.(json.Delim); ok {
			return nil, fmt.Errorf("%w: field %s holds a nested %v", ErrTypeMismatch, key, d)
		}
		scalar, err := NormalizeScalar(val)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		rec.Set(key, scalar)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func trailing(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after top-level value", ErrTypeMismatch)
	}
	return nil
}
