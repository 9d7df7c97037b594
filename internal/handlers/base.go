// internal/handlers/base.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/schema"
)

// BaseHandler carries what every handler needs besides its store.
type BaseHandler struct {
	Logger *zap.Logger
}

func NewBaseHandler(logger *zap.Logger) *BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaseHandler{Logger: logger}
}

// serverError logs err with the request id and answers 500 with a generic
// message. Storage errors never reach the client.
func (b *BaseHandler) serverError(w http.ResponseWriter, r *http.Request, code, message string, err error) {
	b.Logger.Error(message,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", chimw.GetReqID(r.Context())))
	writeJSONErrorResponse(w, http.StatusInternalServerError, code, message)
}

// readBody returns the request body, answering 413 or 400 itself when it
// cannot be read.
func (b *BaseHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSONErrorResponse(w, http.StatusRequestEntityTooLarge, "payload_too_large",
				"Request body exceeds "+strconv.FormatInt(maxErr.Limit, 10)+" bytes")
			return nil, false
		}
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to read request body")
		return nil, false
	}
	return body, true
}

// decodeFailed maps a schema error onto a 400 response.
func (b *BaseHandler) decodeFailed(w http.ResponseWriter, message string, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		writeValidationError(w, message, verr)
		return
	}
	writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
}

// parseID reads the {id} path parameter as a positive integer.
func parseID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_id", entity+" ID must be a positive integer")
		return 0, false
	}
	return id, true
}
