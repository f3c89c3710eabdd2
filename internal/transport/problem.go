package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"catalog-api/internal/domain"

	"go.uber.org/zap"
)

// statusClientClosedRequest is the nginx convention for a request whose
// client went away before a response was written.
const statusClientClosedRequest = 499

// Problem is an RFC 7807 style error payload. Errors is only populated
// for validation failures.
type Problem struct {
	Status   int                 `json:"status"`
	Title    string              `json:"title"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// ErrorWriter maps application errors to problem-details responses. The
// mapping lives here so handlers and the mediator pipeline can return plain
// errors without knowing about HTTP.
type ErrorWriter struct {
	logger      *zap.Logger
	development bool
}

func NewErrorWriter(logger *zap.Logger, development bool) *ErrorWriter {
	return &ErrorWriter{logger: logger, development: development}
}

// WriteError translates err into a problem-details response.
func (ew *ErrorWriter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		domainErr     *domain.DomainError
	)

	switch {
	case errors.As(err, &validationErr):
		ew.logger.Info("request rejected by validation",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		WriteProblem(w, Problem{
			Status:   http.StatusBadRequest,
			Title:    "One or more validation errors occurred.",
			Instance: r.URL.Path,
			Errors:   validationErr.Errors,
		})

	case errors.As(err, &notFoundErr):
		ew.logger.Info("requested resource not found",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		WriteProblem(w, Problem{
			Status:   http.StatusNotFound,
			Title:    "Resource not found.",
			Detail:   notFoundErr.Error(),
			Instance: r.URL.Path,
		})

	case errors.As(err, &domainErr):
		ew.logger.Warn("business rule violated",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		WriteProblem(w, Problem{
			Status:   http.StatusBadRequest,
			Title:    "A business rule was violated.",
			Detail:   domainErr.Message,
			Instance: r.URL.Path,
		})

	case errors.Is(err, context.Canceled):
		ew.logger.Warn("request canceled by client",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
		)
		WriteProblem(w, Problem{
			Status:   statusClientClosedRequest,
			Title:    "Client closed request.",
			Instance: r.URL.Path,
		})

	default:
		ew.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		problem := Problem{
			Status:   http.StatusInternalServerError,
			Title:    "An unexpected error occurred.",
			Instance: r.URL.Path,
		}
		if ew.development {
			problem.Detail = err.Error()
		}
		WriteProblem(w, problem)
	}
}

func WriteProblem(w http.ResponseWriter, problem Problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

// RespondJSON writes payload as a JSON response.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
