package utils

import "net/http"

// Kind tags a CustomError with its failure class.
type Kind int

const (
	KindValidation Kind = iota
	KindDataNotFound
	KindDataInconsistency
	KindExternalService
	KindSolver
	KindStartupIO
)

// HTTPStatus maps an error kind to the response status used by the global
// error handler middleware.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindDataInconsistency:
		return http.StatusBadRequest
	case KindDataNotFound:
		return http.StatusNotFound
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDataNotFound:
		return "data not found"
	case KindDataInconsistency:
		return "data inconsistency"
	case KindExternalService:
		return "external service"
	case KindSolver:
		return "solver"
	case KindStartupIO:
		return "startup io"
	default:
		return "unknown"
	}
}

// CustomError is an error carrying a specific failure kind
type CustomError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message
}

// NewCustomError helper to create a CustomError
func NewCustomError(kind Kind, message string) *CustomError {
	return &CustomError{Kind: kind, Message: message}
}
