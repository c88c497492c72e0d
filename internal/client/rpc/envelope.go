package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the body of a procedure response.
type Envelope struct {
	Procedure string `json:"-"`

	// Message is the procedure's return value, untouched.
	Message json.RawMessage `json:"message"`

	Exc            string   `json:"exc,omitempty"`
	ExcType        string   `json:"exc_type,omitempty"`
	RawServerMsgs  string   `json:"_server_messages,omitempty"`
	ServerMessages []string `json:"-"`
}

// Truthy reports whether Message would pass a JavaScript truthiness test:
// absent, null, false, 0 and "" are falsy; everything else, including
// empty objects and arrays, is truthy.
func (e *Envelope) Truthy() bool {
	if e == nil {
		return false
	}
	raw := bytes.TrimSpace(e.Message)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", "0", `""`:
		return false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f != 0
	}
	return true
}

// Text decodes a bare string payload. ok is false when the payload is
// absent or is not a JSON string.
func (e *Envelope) Text() (s string, ok bool) {
	if !e.Truthy() {
		return "", false
	}
	if err := json.Unmarshal(e.Message, &s); err != nil {
		return "", false
	}
	return s, s != ""
}

// decodeServerMessages unpacks _server_messages: a JSON-encoded list of
// JSON-encoded objects, each with a "message" field. Entries that are
// plain strings are kept as they are.
func decodeServerMessages(raw string) []string {
	if raw == "" {
		return nil
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{raw}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var m struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(item), &m); err == nil && m.Message != "" {
			out = append(out, m.Message)
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseEnvelope(procedure string, body []byte) (*Envelope, error) {
	env := &Envelope{Procedure: procedure}
	if len(bytes.TrimSpace(body)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	env.ServerMessages = decodeServerMessages(env.RawServerMsgs)
	return env, nil
}
