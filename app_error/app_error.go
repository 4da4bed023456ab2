package app_error

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// ValidationError covers malformed input: bad seed values, unsupported pool
// counts/sizes, malformed scores. Raised before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) HTTPStatus() int {
	return 400
}

// IntegrityViolation means stored data contradicts an invariant the engine
// relies on (slot without a team, seed collision). Upstream corruption, not
// bad user input.
type IntegrityViolation struct {
	Message string
}

func (e *IntegrityViolation) Error() string {
	return e.Message
}

func (e *IntegrityViolation) HTTPStatus() int {
	return 500
}

// CapacityError is the recoverable "division is full" condition.
type CapacityError struct {
	Message string
}

func (e *CapacityError) Error() string {
	return e.Message
}

func (e *CapacityError) HTTPStatus() int {
	return 409
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) HTTPStatus() int {
	return 404
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Integrityf(format string, args ...any) error {
	return &IntegrityViolation{Message: fmt.Sprintf(format, args...)}
}

func Capacityf(format string, args ...any) error {
	return &CapacityError{Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

type statusCarrier interface {
	error
	HTTPStatus() int
}

// HTTPStatus maps an error to a response status, defaulting to 500.
func HTTPStatus(err error) int {
	var carrier statusCarrier
	if errors.As(err, &carrier) {
		return carrier.HTTPStatus()
	}
	return 500
}

func WithHTTPStatus(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
