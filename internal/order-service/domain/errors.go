package domain

import (
	"errors"
	"fmt"
)

// PlaceOrderError is the closed set of failures the place-order workflow can
// report. Exactly one of them is returned for a failed order.
type PlaceOrderError interface {
	error
	placeOrderError()
}

// ValidationError reports a structural or invariant violation in the input,
// including unknown product codes and unconfirmed addresses. Field is the
// dotted path of the offending input field, when known.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (*ValidationError) placeOrderError() {}

// PricingError reports a line price or billing amount outside its bound.
type PricingError struct {
	Message string
}

func NewPricingError(format string, args ...any) *PricingError {
	return &PricingError{Message: fmt.Sprintf(format, args...)}
}

func (e *PricingError) Error() string  { return e.Message }
func (*PricingError) placeOrderError() {}

// ServiceInfo identifies a remote collaborator in error reports.
type ServiceInfo struct {
	Name     string
	Endpoint string
}

// RemoteServiceError wraps a failure of an injected capability verbatim.
type RemoteServiceError struct {
	Service ServiceInfo
	Err     error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service.Name, e.Err)
}

func (e *RemoteServiceError) Unwrap() error  { return e.Err }
func (*RemoteServiceError) placeOrderError() {}

// WithField places a ValidationError under field, so nested decoders build
// paths like "shippingAddress.zipCode". Any other error is returned unchanged.
func WithField(field string, err error) error {
	ve, ok := err.(*ValidationError)
	if !ok {
		return err
	}
	path := field
	if ve.Field != "" {
		path = field + "." + ve.Field
	}
	return &ValidationError{Field: path, Message: ve.Message}
}

// Error codes used when a PlaceOrderError crosses a transport boundary.
const (
	CodeValidationError    = "ValidationError"
	CodePricingError       = "PricingError"
	CodeRemoteServiceError = "RemoteServiceError"
)

// ErrorCode names the kind of a PlaceOrderError. Errors outside the closed set
// report an empty code.
func ErrorCode(err error) string {
	var pe PlaceOrderError
	if !errors.As(err, &pe) {
		return ""
	}
	switch pe.(type) {
	case *ValidationError:
		return CodeValidationError
	case *PricingError:
		return CodePricingError
	case *RemoteServiceError:
		return CodeRemoteServiceError
	}
	return ""
}
