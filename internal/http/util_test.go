package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathID(t *testing.T) {
	id, tail, ok := pathID("/api/clients/42", "/api/clients/")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "", tail)

	id, tail, ok = pathID("/api/clients/42/notes", "/api/clients/")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "/notes", tail)

	_, _, ok = pathID("/api/clients/", "/api/clients/")
	assert.False(t, ok)

	_, _, ok = pathID("/api/clients/abc", "/api/clients/")
	assert.False(t, ok)

	_, _, ok = pathID("/api/clients/-1", "/api/clients/")
	assert.False(t, ok)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 6, parseInt("", 6))
	assert.Equal(t, 6, parseInt("lots", 6))
	assert.Equal(t, 12, parseInt("12", 6))
}
