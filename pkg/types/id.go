package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies every storefront record. Values are compared in normalized string form,
// so 7 and "7" name the same record. JSON decoding accepts either a string or a number
// because older snapshots stored numeric identifiers.
type ID string

// NewID normalizes raw input into an ID.
func NewID(raw string) ID {
	return ID(strings.TrimSpace(raw))
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}

// Normalized returns the canonical comparison form.
func (id ID) Normalized() ID {
	return ID(strings.TrimSpace(string(id)))
}

// Equal compares two IDs after normalization.
func (id ID) Equal(other ID) bool {
	return id.Normalized() == other.Normalized()
}

// IsZero reports whether the ID is blank.
func (id ID) IsZero() bool {
	return id.Normalized() == ""
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*id = NewID(raw)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("id: unsupported value %s", string(trimmed))
	}
	*id = NewID(num.String())
	return nil
}
