package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error 코드를 가진 에러 인터페이스
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError 애플리케이션 공통 에러 구현체
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

// Code 에러 코드 반환
func (e *AppError) Code() string {
	return e.code
}

// Message 원인 에러를 제외한 메시지 반환
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError 새 애플리케이션 에러 생성
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap 기존 에러를 메시지와 함께 감쌉니다. 코드가 있는 에러는 코드를 유지합니다.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return NewAppError(CodeOf(err), message, err)
}

// CodeOf 에러 체인에서 에러 코드를 찾습니다. 코드가 없으면 INTERNAL.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var coded interface{ Code() string }
	if As(err, &coded) {
		return coded.Code()
	}
	return ErrInternal
}

// IsCode 에러 체인의 코드가 code와 같은지 확인합니다.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
