package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentGet(t *testing.T) {
	doc := NewDocument([]byte(`{"rows":[{"resourceId":"r1","value":0.75}],"kind":"utilization"}`))
	assert.Equal(t, "utilization", doc.Get("kind").String())
	assert.Equal(t, 0.75, doc.Get("rows.0.value").Float())
	assert.True(t, doc.Exists("rows"))
	assert.False(t, doc.Exists("missing"))
}

func TestDocumentMap(t *testing.T) {
	doc := NewDocument([]byte(`{"a":1,"b":"two"}`))
	m := doc.Map()
	assert.Equal(t, float64(1), m["a"])
	assert.Equal(t, "two", m["b"])
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	var doc Document
	assert.NoError(t, json.Unmarshal([]byte(`{"nested":{"ok":true}}`), &doc))
	assert.True(t, doc.Get("nested.ok").Bool())

	out, err := json.Marshal(&doc)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"nested":{"ok":true}}`, string(out))
}
