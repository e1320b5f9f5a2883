package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	dErrors "tidv/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies; payloads here are a handful of fields.
const maxBodyBytes = 64 << 10

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error            string   `json:"error"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Required         []string `json:"required,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error response. Internal
// errors never leak their description.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: string(dErrors.CodeInternal)})
		return
	}

	resp := ErrorResponse{Error: string(de.Code)}
	if de.Code != dErrors.CodeInternal {
		resp.ErrorDescription = de.Message
		resp.Required = de.Fields
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), resp)
}

// WriteLocation hands the caller on to location, either as a 302 redirect or
// as a JSON body carrying the target.
func WriteLocation(w http.ResponseWriter, redirect bool, location string) {
	if redirect {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"location": location})
}

// DecodeObject reads a JSON object from the request body regardless of the
// declared content type. Some clients post JSON as text/plain, and some
// double-encode it as a JSON string; both are accepted. Numbers are kept as
// json.Number so answers such as "184.30" survive untouched.
//
// required is echoed back to the caller when the payload is rejected.
func DecodeObject[T any](r *http.Request, required ...string) (*T, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, dErrors.InvalidPayload("failed to read request body", required...)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, dErrors.InvalidPayload("request body is required", required...)
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, dErrors.InvalidPayload("Invalid JSON body", required...)
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	if len(raw) == 0 || raw[0] != '{' {
		return nil, dErrors.InvalidPayload("request body must be a JSON object", required...)
	}

	var out T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, dErrors.InvalidPayload("Invalid JSON body", required...)
	}
	return &out, nil
}
