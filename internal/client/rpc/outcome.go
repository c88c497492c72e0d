package rpc

import (
	"encoding/json"
	"strings"
)

// Outcome is implemented by every typed procedure response. It tells the
// decoder whether the procedure considers the call successful.
type Outcome interface {
	Succeeded() bool
	FailureReason() string
}

// SuccessReply is the {success: bool, error: string} convention.
type SuccessReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (r SuccessReply) Succeeded() bool       { return r.Success }
func (r SuccessReply) FailureReason() string { return r.Error }

// StatusReply is the {status: "success"|"error", message: string}
// convention.
type StatusReply struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r StatusReply) Succeeded() bool { return strings.EqualFold(r.Status, "success") }

func (r StatusReply) FailureReason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// Decode unmarshals env.Message into T and checks its discriminator.
//
// A falsy payload and a payload reporting failure both yield an
// *ApplicationError; an undecodable payload yields a *TransportError of
// kind ErrBadResponse.
func Decode[T Outcome](env *Envelope) (T, error) {
	var out T

	if !env.Truthy() {
		return out, &ApplicationError{Procedure: procedureOf(env)}
	}

	if err := json.Unmarshal(env.Message, &out); err != nil {
		return out, &TransportError{Procedure: env.Procedure, Kind: ErrBadResponse, Err: err}
	}

	if !out.Succeeded() {
		return out, &ApplicationError{Procedure: env.Procedure, Reason: out.FailureReason()}
	}
	return out, nil
}

func procedureOf(env *Envelope) string {
	if env == nil {
		return ""
	}
	return env.Procedure
}
