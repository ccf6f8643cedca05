// internal/app/system/httpjson/httpjson.go

// Package httpjson renders JSON responses and decodes JSON request bodies
// for the API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write renders v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders err as a JSON failure response. The caller sees only the
// stable code and caller-safe message; wrapped internal detail is logged
// server-side.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	ae := apperr.From(err)
	if log != nil && ae.Err != nil {
		log.Error("request failed",
			zap.String("code", string(ae.Code)),
			zap.Error(ae.Err))
	}
	Write(w, ae.HTTPStatus(), errorBody{Error: string(ae.Code), Message: ae.Message})
}

// Decode reads a JSON request body into v, limiting the body to maxBytes.
func Decode(r *http.Request, v any, maxBytes int64) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is empty", err)
		}
		return apperr.Validation("malformed JSON body", err)
	}
	return nil
}
