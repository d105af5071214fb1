// Package client calls a remote webpages service over HTTP or gRPC. Both
// clients implement effects.Backend, so the effect pipeline can talk to a real
// backend instead of simulating one.
package client

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/atinyakov/go-webpages/internal/storage"
)

// ErrTransport wraps failures that happened before a response was received.
var ErrTransport = errors.New("transport error")

// Error is a call the server answered with a failure. Message is meant for
// the user.
type Error struct {
	// Status is the HTTP status or the gRPC code.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPMessage returns the user-facing text for an HTTP failure status.
func HTTPMessage(status int, text string) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad Request - Please check your input"
	case http.StatusUnauthorized:
		return "Unauthorized - Please log in"
	case http.StatusForbidden:
		return "Forbidden - You do not have permission"
	case http.StatusNotFound:
		return "Not Found - The requested resource was not found"
	case http.StatusInternalServerError:
		return "Internal Server Error - Please try again later"
	case http.StatusServiceUnavailable:
		return "Service Unavailable - Please try again later"
	}
	return fmt.Sprintf("Error Code: %d\nMessage: %s", status, text)
}

var grpcMessages = map[codes.Code]string{
	codes.OK:                 "Success",
	codes.Canceled:           "Operation was cancelled",
	codes.Unknown:            "Unknown error",
	codes.InvalidArgument:    "Invalid argument provided",
	codes.DeadlineExceeded:   "Operation deadline exceeded",
	codes.NotFound:           "Resource not found",
	codes.AlreadyExists:      "Resource already exists",
	codes.PermissionDenied:   "Permission denied",
	codes.ResourceExhausted:  "Resource exhausted",
	codes.FailedPrecondition: "Failed precondition",
	codes.Aborted:            "Operation aborted",
	codes.OutOfRange:         "Out of range",
	codes.Unimplemented:      "Method not implemented",
	codes.Internal:           "Internal server error",
	codes.Unavailable:        "Service unavailable",
	codes.DataLoss:           "Data loss",
	codes.Unauthenticated:    "Unauthenticated",
}

// GRPCMessage returns the user-facing text for a gRPC status code.
func GRPCMessage(code codes.Code) string {
	if msg, ok := grpcMessages[code]; ok {
		return msg
	}
	return "Unknown gRPC error"
}

func httpSentinel(status int) error {
	switch status {
	case http.StatusNotFound:
		return storage.ErrNotFound
	case http.StatusConflict:
		return storage.ErrConflict
	}
	return nil
}

func grpcSentinel(code codes.Code) error {
	switch code {
	case codes.NotFound:
		return storage.ErrNotFound
	case codes.AlreadyExists:
		return storage.ErrConflict
	}
	return nil
}
