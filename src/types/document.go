package types

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Document wraps an analytics or AI payload whose schema the backend does not
// publish. Callers address fields by gjson path instead of a struct.
type Document struct {
	raw []byte
}

func NewDocument(raw []byte) *Document {
	return &Document{raw: raw}
}

func (d *Document) Raw() []byte {
	return d.raw
}

func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

func (d *Document) Exists(path string) bool {
	return gjson.GetBytes(d.raw, path).Exists()
}

// Map decodes the document into a JSONB map. Returns an empty map for empty
// or non-object payloads.
func (d *Document) Map() JSONB {
	out := JSONB{}
	if len(d.raw) == 0 {
		return out
	}
	if err := json.Unmarshal(d.raw, &out); err != nil {
		return JSONB{}
	}
	return out
}

func (d *Document) String() string {
	return string(d.raw)
}

func (d *Document) UnmarshalJSON(b []byte) error {
	d.raw = append(d.raw[:0], b...)
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 {
		return []byte("null"), nil
	}
	return d.raw, nil
}
