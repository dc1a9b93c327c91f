package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStringList_RoundTrip(t *testing.T) {
	encoded, err := encodeStringList([]string{"pool", "garden"})
	require.NoError(t, err)
	assert.Equal(t, `["pool","garden"]`, encoded)

	decoded := decodeStringList(sql.NullString{String: encoded, Valid: true})
	assert.Equal(t, []string{"pool", "garden"}, decoded)
}

func TestEncodeStringList_NilEncodesAsEmptyList(t *testing.T) {
	encoded, err := encodeStringList(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, encoded)
}

func TestDecodeStringList_MissingEmptyMalformed(t *testing.T) {
	assert.Equal(t, []string{}, decodeStringList(sql.NullString{}))
	assert.Equal(t, []string{}, decodeStringList(sql.NullString{String: "", Valid: true}))
	assert.Equal(t, []string{}, decodeStringList(sql.NullString{String: "{broken", Valid: true}))
	assert.Equal(t, []string{}, decodeStringList(sql.NullString{String: "null", Valid: true}))
}
