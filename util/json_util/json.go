// Package json_util provides JSON utilities including a raw message type for
// list-valued document fields.
package json_util

import (
	"errors"
)

// RawMessage is a raw JSON value stored verbatim in the database. Empty
// values marshal as an empty list, matching the API's list-valued fields.
type RawMessage []byte

// EmptyList is the zero value persisted for absent list fields.
func EmptyList() RawMessage {
	return RawMessage("[]")
}

func (m RawMessage) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("[]"), nil
	}
	return m, nil
}

// UnmarshalJSON sets *m to a copy of the JSON data.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	if m == nil {
		return errors.New("json_util.RawMessage: UnmarshalJSON on nil pointer")
	}
	*m = append((*m)[0:0], data...)
	return nil
}
