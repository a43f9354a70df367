package transport

import (
	"encoding/json"

	"github.com/spec-kit/auth-service/internal/auth"
)

// Envelope is the unit flowing through the dispatch layer. Identity is absent
// on arrival and populated by the access guard only; any identity supplied by
// the caller is discarded during parsing and never trusted.
type Envelope struct {
	Pattern  string
	Payload  []byte
	Locale   string
	Token    string
	Identity *auth.Claims
}

// transportFields are the side-channel fields every message may carry next to
// its pattern-specific payload.
type transportFields struct {
	Lang          string `json:"lang"`
	Token         string `json:"token"`
	Authorization string `json:"authorization"`
}

// ParseEnvelope builds an envelope from a raw message body. The token is taken
// from the `token` field, falling back to an `authorization` header-style
// field. The body is kept verbatim for handler-level decoding.
func ParseEnvelope(pattern string, body []byte) *Envelope {
	env := &Envelope{Pattern: pattern, Payload: body}

	var fields transportFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return env
	}

	env.Locale = fields.Lang
	env.Token = fields.Token
	if env.Token == "" {
		env.Token = fields.Authorization
	}
	return env
}

// Bind decodes the pattern-specific payload into dst.
func (e *Envelope) Bind(dst any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(e.Payload, dst)
}

// Response is the uniform success envelope returned to callers.
type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the uniform error envelope returned to callers.
type ErrorResponse struct {
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Details    map[string]any `json:"details,omitempty"`
}
