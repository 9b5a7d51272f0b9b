// Package apperror defines the error taxonomy shared by the service layer and the HTTP surface.
package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)

// HTTPError is the transport view of a classified error.
type HTTPError struct {
	Status  int
	Message string
}

// Classify maps an error to the status and client message the HTTP layer returns.
// Unknown errors collapse to a generic 500 so storage details never leak.
func Classify(err error) HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return HTTPError{Status: http.StatusBadRequest, Message: "Email already registered"}
	case errors.Is(err, ErrInvalidCredentials):
		return HTTPError{Status: http.StatusUnauthorized, Message: "Incorrect username or password"}
	case errors.Is(err, ErrUnauthorized):
		return HTTPError{Status: http.StatusUnauthorized, Message: "Could not validate credentials"}
	case errors.Is(err, ErrNotFound):
		return HTTPError{Status: http.StatusNotFound, Message: "Producto no encontrado"}
	case errors.Is(err, ErrValidation):
		return HTTPError{Status: http.StatusUnprocessableEntity, Message: err.Error()}
	default:
		return HTTPError{Status: http.StatusInternalServerError, Message: "internal server error"}
	}
}
