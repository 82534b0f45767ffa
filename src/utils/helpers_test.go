package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryString(t *testing.T) {
	assert.Equal(t, "", QueryString(url.Values{}))
	assert.Equal(t, "", QueryString(nil))

	values := url.Values{}
	values.Set("type", "computer_lab")
	values.Set("capacity", "30")
	assert.Equal(t, "?capacity=30&type=computer_lab", QueryString(values))
}

func TestSetString(t *testing.T) {
	values := url.Values{}
	SetString(values, "status", "")
	SetString(values, "building", "Engineering")
	assert.False(t, values.Has("status"))
	assert.Equal(t, "Engineering", values.Get("building"))
}

func TestSetInt(t *testing.T) {
	values := url.Values{}
	SetInt(values, "page", 0)
	SetInt(values, "limit", -1)
	SetInt(values, "capacity", 25)
	assert.False(t, values.Has("page"))
	assert.False(t, values.Has("limit"))
	assert.Equal(t, "25", values.Get("capacity"))
}

func TestSetBool(t *testing.T) {
	values := url.Values{}
	SetBool(values, "unreadOnly", false)
	assert.False(t, values.Has("unreadOnly"))
	SetBool(values, "unreadOnly", true)
	assert.Equal(t, "true", values.Get("unreadOnly"))
}

func TestAddAll(t *testing.T) {
	values := url.Values{}
	AddAll(values, "features", nil)
	assert.False(t, values.Has("features"))
	AddAll(values, "features", []string{"projector", "whiteboard"})
	assert.Equal(t, []string{"projector", "whiteboard"}, values["features"])
}
