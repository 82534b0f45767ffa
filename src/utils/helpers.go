package utils

import (
	"net/url"
	"strconv"
)

// QueryString encodes values as a query string with a leading "?", or returns
// an empty string when nothing is set. Encoding sorts keys, so the same
// parameter set always produces the same string.
func QueryString(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// SetString adds key=val unless val is empty.
func SetString(values url.Values, key, val string) {
	if val != "" {
		values.Set(key, val)
	}
}

// SetInt adds key=n unless n is zero or negative. The backend treats absent
// and zero-valued numeric filters the same way.
func SetInt(values url.Values, key string, n int) {
	if n > 0 {
		values.Set(key, strconv.Itoa(n))
	}
}

// SetBool adds key=true only when b is set. False is never sent.
func SetBool(values url.Values, key string, b bool) {
	if b {
		values.Set(key, "true")
	}
}

// AddAll appends one key entry per element. Used for array-valued filters
// such as features.
func AddAll(values url.Values, key string, elems []string) {
	for _, e := range elems {
		values.Add(key, e)
	}
}
