package transcoder

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Object is a JSON object that keeps keys in insertion order.
type Object struct {
	values map[string]any
	keys   []string
}

func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key. Replacing a value keeps the key's original position.
func (o *Object) Set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Keys() []string {
	return o.keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue renders a decoded value as compact or indented JSON text.
func marshalValue(v any, pretty bool) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if !pretty {
		return string(data), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
