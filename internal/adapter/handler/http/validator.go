package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// CustomValidator echo.Validator 구현체
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator validator/v10 기반 요청 검증기 생성
func NewCustomValidator() echo.Validator {
	return &CustomValidator{validator: validator.New()}
}

// Validate 검증 실패는 INVALID_ARGUMENT 에러로 반환합니다.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, validationMessage(err), err)
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request"
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
