package repository

import (
	"database/sql"
	"encoding/json"
)

// encodeStringList serializes an ordered string list to the JSON text blob
// the features/images columns store. nil encodes as an empty list.
func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeStringList restores a stored JSON text blob to an ordered string
// list. Missing, empty, or malformed values decode to an empty list, never
// an error.
func decodeStringList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
