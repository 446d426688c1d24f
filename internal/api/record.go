package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValueKind records the JSON type a field value arrived as.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNull
	ValueNumber
	ValueBool
	ValueComposite
)

// Field is one name/value pair of a record, in backend order.
type Field struct {
	Name  string
	Value string
	Kind  ValueKind
}

// Ptr returns the value, or nil when the backend sent null.
func (f Field) Ptr() *string {
	if f.Kind == ValueNull {
		return nil
	}
	v := f.Value
	return &v
}

// Falsy reports whether the value would be treated as "nothing" by a UI:
// null, empty string, zero or false.
func (f Field) Falsy() bool {
	switch f.Kind {
	case ValueNull:
		return true
	case ValueString:
		return f.Value == ""
	case ValueNumber:
		return f.Value == "0" || f.Value == "0.0" || f.Value == "-0"
	case ValueBool:
		return f.Value == "false"
	}
	return false
}

// Record is an ordered field mapping. Field names are free-form and depend
// on the dataset, so JSON objects are decoded keeping their key order.
type Record struct {
	Fields []Field
}

// NewRecord builds a record of string fields from alternating name/value pairs.
func NewRecord(pairs ...string) Record {
	var r Record
	for i := 0; i+1 < len(pairs); i += 2 {
		r.set(Field{Name: pairs[i], Value: pairs[i+1], Kind: ValueString})
	}
	return r
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.Fields)
}

// Get returns the named field.
func (r Record) Get(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the named value, or nil when missing or null.
func (r Record) Value(name string) *string {
	f, ok := r.Get(name)
	if !ok {
		return nil
	}
	return f.Ptr()
}

// set appends a field or replaces an existing one in place.
func (r *Record) set(f Field) {
	for i := range r.Fields {
		if r.Fields[i].Name == f.Name {
			r.Fields[i] = f
			return
		}
	}
	r.Fields = append(r.Fields, f)
}

// UnmarshalJSON decodes a JSON object keeping key order. Null decodes to an
// empty record.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		r.Fields = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	out := Record{Fields: []Field{}}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		field, err := fieldFromRaw(key, raw)
		if err != nil {
			return err
		}
		out.set(field)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func fieldFromRaw(name string, raw json.RawMessage) (Field, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Field{Name: name, Kind: ValueNull}, nil
	}
	switch trimmed[0] {
	case 'n':
		return Field{Name: name, Kind: ValueNull}, nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Value: s, Kind: ValueString}, nil
	case 't', 'f':
		return Field{Name: name, Value: string(trimmed), Kind: ValueBool}, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return Field{}, err
		}
		return Field{Name: name, Value: buf.String(), Kind: ValueComposite}, nil
	default:
		return Field{Name: name, Value: string(trimmed), Kind: ValueNumber}, nil
	}
}

// MarshalJSON encodes the record as an object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		switch f.Kind {
		case ValueNull:
			b.WriteString("null")
		case ValueString:
			val, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			b.Write(val)
		default:
			b.WriteString(f.Value)
		}
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
