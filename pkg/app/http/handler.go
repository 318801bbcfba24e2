// Package http carries the server plumbing shared by the API: the
// error-returning handler adapter and graceful shutdown.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/ampnet/tokenizer-middleware/pkg/app/errors"
)

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing the error response itself.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError adapts a HandlerFunc to http.HandlerFunc, turning a returned
// ServiceError into the JSON error body and status its category maps to.
// Every route in pkg/api goes through it:
//
//	r.Post("/campaigns/{address}/invest", apphttp.HandleError(h.invest))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

// DefaultErrorHandler writes the JSON error response for err. Errors that do
// not unwrap to a ServiceError get a generic 500 so internal detail never
// reaches the client.
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	var svcErr *apperrors.ServiceError

	type errorResponse struct {
		ErrMsg     string `json:"error"`
		ErrMsgCode int    `json:"code"`
	}

	if errors.As(err, &svcErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(svcErr.StatusCode())
		_ = json.NewEncoder(w).Encode(&errorResponse{
			ErrMsg:     svcErr.Message,
			ErrMsgCode: svcErr.StatusCode(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(&errorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
	})
}
