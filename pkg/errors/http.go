package errors

import "net/http"

// FromHTTPStatus 원격 API의 HTTP 응답 상태를 내부 에러로 변환합니다.
// code가 비어 있으면 상태 코드로 추정합니다.
func FromHTTPStatus(status int, code, message string) error {
	if status >= 200 && status < 300 {
		return nil
	}
	if code == "" {
		code = CodeForHTTPStatus(status)
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return NewAppError(code, message, nil)
}
