package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Scalar is a form or JSON field that accepts either a number or a string.
// HTML forms send "12.50" while JSON clients usually send 12.5.
type Scalar string

// UnmarshalJSON keeps the raw digits of a number and the contents of a string.
// null yields an empty value.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = Scalar(num.String())
	return nil
}

// String returns the trimmed value
func (s Scalar) String() string {
	return strings.TrimSpace(string(s))
}
