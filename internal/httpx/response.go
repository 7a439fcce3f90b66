// Package httpx centralizes the JSON response envelope used by every
// endpoint: {success, message, data} on success, {success:false, message}
// on failure.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// StatusCoder is implemented by errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// JSON writes a success envelope with the given status and payload.
func JSON(w http.ResponseWriter, status int, message string, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body, err := json.Marshal(Envelope{Success: true, Message: message, Data: payload})
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"success":false,"message":"encode error"}`, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// Fail writes a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	body, _ := json.Marshal(Envelope{Success: false, Message: message})
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

// Error is the central error-to-response mapping: errors carrying a status
// code keep it, everything else becomes a 500 with a generic message.
func Error(w http.ResponseWriter, err error) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		Fail(w, sc.StatusCode(), err.Error())
		return
	}
	Fail(w, http.StatusInternalServerError, "Internal server error")
}
