package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// --- Shared Custom Types ---

// VariantImages is one named entry of an ordered variant → images mapping.
type VariantImages struct {
	Name   string
	Images []string
}

// VariantSet keeps variant views in the order they appear in the source document.
// JSON objects are unordered in Go maps, so it decodes the object token by token.
type VariantSet []VariantImages

// Get returns the images of the named variant.
func (v VariantSet) Get(name string) ([]string, bool) {
	for _, entry := range v {
		if entry.Name == name {
			return entry.Images, true
		}
	}
	return nil, false
}

// Names returns variant names in source order.
func (v VariantSet) Names() []string {
	names := make([]string, len(v))
	for i, entry := range v {
		names[i] = entry.Name
	}
	return names
}

func (v VariantSet) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entry.Images)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *VariantSet) UnmarshalJSON(data []byte) error {
	if v == nil {
		return errors.New("VariantSet: UnmarshalJSON on nil pointer")
	}
	*v = (*v)[:0]
	if isJSONNull(data) {
		*v = nil
		return nil
	}
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		var images []string
		if !isJSONNull(raw) {
			if err := json.Unmarshal(raw, &images); err != nil {
				return fmt.Errorf("views[%q]: %w", key, err)
			}
		}
		for i := range *v {
			if (*v)[i].Name == key {
				(*v)[i].Images = images
				return nil
			}
		}
		*v = append(*v, VariantImages{Name: key, Images: images})
		return nil
	})
}

// VariantModel is one named entry of a variant → model locator mapping.
type VariantModel struct {
	Name string
	Src  string
}

// ModelRef is either a single model locator or an ordered variant → locator mapping.
type ModelRef struct {
	Single   string
	Variants []VariantModel
}

// IsZero reports whether the product has no model reference at all.
func (m ModelRef) IsZero() bool {
	return m.Single == "" && len(m.Variants) == 0
}

// Resolve picks the locator: the single string, else the variant entry, else the first mapping value.
func (m ModelRef) Resolve(variant string) string {
	if m.Single != "" {
		return m.Single
	}
	if variant != "" {
		for _, vm := range m.Variants {
			if vm.Name == variant && vm.Src != "" {
				return vm.Src
			}
		}
	}
	if len(m.Variants) > 0 {
		return m.Variants[0].Src
	}
	return ""
}

func (m ModelRef) MarshalJSON() ([]byte, error) {
	if m.Single != "" {
		return json.Marshal(m.Single)
	}
	if len(m.Variants) == 0 {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, vm := range m.Variants {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(vm.Name)
		val, _ := json.Marshal(vm.Src)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *ModelRef) UnmarshalJSON(data []byte) error {
	*m = ModelRef{}
	trimmed := bytes.TrimSpace(data)
	if isJSONNull(trimmed) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &m.Single)
	}
	return decodeOrderedObject(trimmed, func(key string, raw json.RawMessage) error {
		var src string
		if !isJSONNull(raw) {
			if err := json.Unmarshal(raw, &src); err != nil {
				return fmt.Errorf("gltf[%q]: %w", key, err)
			}
		}
		m.Variants = append(m.Variants, VariantModel{Name: key, Src: src})
		return nil
	})
}

func decodeOrderedObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func isJSONNull(data []byte) bool {
	return len(data) == 0 || string(bytes.TrimSpace(data)) == "null"
}

// Response standardizes API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}
