package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Check is a checkbox field. The server sends 0/1; older payloads and
// local edits may carry booleans or the strings "0"/"1".
type Check bool

func (c *Check) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "null", "", `""`:
		*c = false
		return nil
	case "true":
		*c = true
		return nil
	case "false":
		*c = false
		return nil
	}

	if unq, err := unquote(s); err == nil {
		s = unq
	}
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		*c = true
		return nil
	case "0", "false", "no":
		*c = false
		return nil
	}

	var f float64
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return fmt.Errorf("check field: unexpected value %s", string(data))
	}
	*c = f != 0
	return nil
}

func (c Check) MarshalJSON() ([]byte, error) {
	if c {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func unquote(s string) (string, error) {
	var out string
	err := json.Unmarshal([]byte(s), &out)
	return out, err
}
