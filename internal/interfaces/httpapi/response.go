package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/team-draw/internal/usecase"
)

const (
	apiVersion      = "2.0"
	errorDomain     = "team-draw"
	internalMessage = "internal server error"
)

// envelope follows the Google JSON style guide: either data or error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorKind struct {
	sentinel   error
	httpStatus int
	reason     string
	status     string
}

var errorKinds = []errorKind{
	{sentinel: usecase.ErrInvalidInput, httpStatus: http.StatusBadRequest, reason: "invalidInput", status: "INVALID_ARGUMENT"},
	{sentinel: usecase.ErrNotFound, httpStatus: http.StatusNotFound, reason: "notFound", status: "NOT_FOUND"},
	{sentinel: usecase.ErrDependencyUnavailable, httpStatus: http.StatusServiceUnavailable, reason: "dependencyUnavailable", status: "UNAVAILABLE"},
}

var internalKind = errorKind{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	_, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError renders err with the status of the first matching sentinel.
// Unmapped errors are reported as internal without their text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	kind := classifyError(err)
	msg := internalMessage
	if kind.sentinel != nil {
		msg = err.Error()
	}
	writeJSON(w, kind.httpStatus, errorEnvelope(kind, msg))
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	_, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(w, internalKind.httpStatus, errorEnvelope(internalKind, internalMessage))
}

func classifyError(err error) errorKind {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.sentinel) {
			return kind
		}
	}
	return internalKind
}

func errorEnvelope(kind errorKind, msg string) envelope {
	return envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    kind.httpStatus,
			Message: msg,
			Status:  kind.status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: kind.reason, Message: msg}},
		},
	}
}
