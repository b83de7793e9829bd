package handler

import (
	apperrors "github.com/address-search/internal/pkg/errors"
	"github.com/address-search/internal/pkg/validator"
)

// invalidRequest оборачивает ошибку валидации в INVALID_REQUEST со списком полей
func invalidRequest(err error) *apperrors.AppError {
	details := map[string]interface{}{}
	if fields := validator.FieldErrors(err); len(fields) > 0 {
		details["fields"] = fields
	} else {
		details["reason"] = err.Error()
	}
	return apperrors.ErrInvalidRequest.WithDetails(details)
}
