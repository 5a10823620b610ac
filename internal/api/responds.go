package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// BadRequestError is returned by handlers for invalid input
type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string {
	return e.msg
}

func NewBadRequestError(msg string) error {
	return &BadRequestError{msg: msg}
}

// NotFoundError is returned by handlers for missing resources
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{msg: msg}
}

// apiHandler returns a value to encode as JSON or an error to translate
type apiHandler func(w http.ResponseWriter, r *http.Request) (any, error)

func (s *Server) adapt(h apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(w, r)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var badRequest *BadRequestError
	var notFound *NotFoundError

	switch {
	case errors.As(err, &badRequest):
		http.Error(w, badRequest.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound), errors.Is(err, ErrServerNotFound), errors.Is(err, ErrKeyNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "Sorry! Something went wrong", http.StatusInternalServerError)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
