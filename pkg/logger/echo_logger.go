package logger

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// 요청 로그에서 제외할 경로
var skippedPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// maskAuthorization Bearer 토큰의 앞뒤 일부만 남깁니다.
func maskAuthorization(val string) string {
	if len(val) <= 15 {
		return "[MASKED]"
	}
	return val[:10] + "..." + val[len(val)-5:]
}

// NewEchoRequestLogger zap 기반 HTTP 접근 로그 미들웨어를 생성합니다.
// 4xx는 Warn, 5xx와 핸들러 에러는 Error, 나머지는 Info로 기록합니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			_, skip := skippedPaths[c.Request().URL.Path]
			return skip
		},
		HandleError:   true,
		LogLatency:    true,
		LogRemoteIP:   true,
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogRequestID:  true,
		LogUserAgent:  true,
		LogStatus:     true,
		LogError:      true,
		LogHeaders:    []string{"Content-Type", "Authorization"},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.route", v.RoutePath),
				zap.String("request.user_agent", v.UserAgent),
				zap.String("request.request_id", v.RequestID),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
			}

			if len(v.Headers) > 0 {
				headers := make(map[string]string, len(v.Headers))
				for k, values := range v.Headers {
					if len(values) == 0 {
						continue
					}
					if strings.EqualFold(k, "Authorization") {
						headers[k] = maskAuthorization(values[0])
						continue
					}
					headers[k] = values[0]
				}
				fields = append(fields, zap.Any("request.headers", headers))
			}

			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("서버 오류", fields...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("클라이언트 오류", fields...)
			default:
				logger.Info("요청 완료", fields...)
			}
			return nil
		},
	})
}

// ErrorResponse 모든 HTTP 에러 응답의 본문
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WithEchoLogger echo 내장 로거를 zap으로 교체하고 에러 핸들러를 설정합니다.
// 에러는 {"error": 메시지, "code": 코드} 형태로 응답됩니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
}

// NewHTTPErrorHandler 애플리케이션 에러와 echo 에러를 공통 JSON 형식으로 변환하는 핸들러
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err)
		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", status),
			zap.String("error_code", body.Code),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP 에러", fields...)
		} else {
			logger.Debug("HTTP 에러", fields...)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("에러 응답 전송 실패", zap.Error(writeErr))
		}
	}
}

func resolveError(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if apperrors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		}
		code := apperrors.CodeForHTTPStatus(he.Code)
		if he.Internal != nil && apperrors.CodeOf(he.Internal) != apperrors.ErrInternal {
			code = apperrors.CodeOf(he.Internal)
		}
		return he.Code, ErrorResponse{Error: msg, Code: code}
	}

	code := apperrors.CodeOf(err)
	status := apperrors.ToHTTPStatus(code)
	msg := err.Error()
	var withMessage interface{ Message() string }
	if apperrors.As(err, &withMessage) {
		msg = withMessage.Message()
	}
	if status >= http.StatusInternalServerError {
		// 내부 오류 메시지는 노출하지 않음
		msg = http.StatusText(status)
	}
	return status, ErrorResponse{Error: msg, Code: code}
}
