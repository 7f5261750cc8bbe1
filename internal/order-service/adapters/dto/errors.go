package dto

import (
	"errors"
	"fmt"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// CodeInternalError marks an error outside the workflow's error set.
const CodeInternalError = "InternalError"

type PlaceOrderErrorDto struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromPlaceOrderError(err error) PlaceOrderErrorDto {
	var (
		ve *domain.ValidationError
		pe *domain.PricingError
		re *domain.RemoteServiceError
	)
	switch {
	case errors.As(err, &ve):
		return PlaceOrderErrorDto{Code: domain.CodeValidationError, Message: ve.Error()}
	case errors.As(err, &pe):
		return PlaceOrderErrorDto{Code: domain.CodePricingError, Message: pe.Message}
	case errors.As(err, &re):
		return PlaceOrderErrorDto{
			Code:    domain.CodeRemoteServiceError,
			Message: fmt.Sprintf("%s: %v", re.Service.Name, re.Err),
		}
	}
	return PlaceOrderErrorDto{Code: CodeInternalError, Message: err.Error()}
}
