package ed269

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Properties is an ordered mapping of attribute keys to raw JSON values.
// Authority schemas carry arbitrary fields, so values are kept verbatim and
// the key order of the source document is preserved on output.
type Properties struct {
	keys   []string
	values map[string]json.RawMessage
}

// Len returns the number of keys.
func (p *Properties) Len() int {
	return len(p.keys)
}

// Keys returns the attribute keys in document order.
func (p *Properties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Has reports whether the key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Get returns the raw JSON value for the key.
func (p *Properties) Get(key string) (json.RawMessage, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetString returns the value for the key when it is a JSON string.
func (p *Properties) GetString(key string) (string, bool) {
	raw, ok := p.values[key]
	if !ok {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}

	return s, true
}

// Set stores a raw JSON value, keeping the position of an existing key and
// appending new keys at the end.
func (p *Properties) Set(key string, value json.RawMessage) {
	if p.values == nil {
		p.values = make(map[string]json.RawMessage)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SetString stores a string value under the key.
func (p *Properties) SetString(key, value string) {
	raw, _ := json.Marshal(value)
	p.Set(key, raw)
}

// Delete removes the key and reports whether it was present.
func (p *Properties) Delete(key string) bool {
	if _, ok := p.values[key]; !ok {
		return false
	}

	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}

	return true
}

// Clone returns an independent copy. Raw values are shared since they are
// never mutated in place.
func (p *Properties) Clone() Properties {
	c := Properties{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]json.RawMessage, len(p.values)),
	}
	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}

	return c
}

// Equal reports whether both bags hold the same keys with byte-identical
// values. Key order is not significant for equality.
func (p *Properties) Equal(o *Properties) bool {
	if len(p.values) != len(o.values) {
		return false
	}
	for k, v := range p.values {
		ov, ok := o.values[k]
		if !ok || !bytes.Equal(compactJSON(v), compactJSON(ov)) {
			return false
		}
	}

	return true
}

func compactJSON(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

// MarshalJSON writes the bag as a JSON object in document order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(p.values[k])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording key order.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	p.keys = nil
	p.values = make(map[string]json.RawMessage)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		p.Set(key, raw)
	}

	_, err = dec.Token() // closing brace
	return err
}
