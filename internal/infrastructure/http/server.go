package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/semo-workspace/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-workspace/internal/middleware/auth"
	"github.com/wekeepgrowing/semo-workspace/pkg/logger"
)

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
	cfg     Config
}

// Config HTTP 서버 설정
type Config struct {
	Port         string
	Timeout      time.Duration
	Debug        bool
	AllowOrigins []string
	JWTSecret    string
}

// HealthCheck 의존성 상태 확인 함수. nil이면 정상
type HealthCheck func(ctx context.Context) error

// NewServer HTTP 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug

	// 기본 미들웨어 설정
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	// 로그 미들웨어와 에러 핸들러 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	logger.WithEchoLogger(e, zapLogger)

	e.Validator = handlers.NewCustomValidator()

	address := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.Timeout,
	}

	return &Server{
		router:  e,
		server:  server,
		logger:  zapLogger,
		address: address,
		cfg:     cfg,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// RegisterRoutes HTTP 라우트 등록
func (s *Server) RegisterRoutes(workspaceHandler *handlers.WorkspaceHandler, health HealthCheck) {
	// 헬스 체크
	s.router.GET("/health", func(c echo.Context) error {
		if health != nil {
			if err := health(c.Request().Context()); err != nil {
				s.logger.Warn("헬스 체크 실패", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
				})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// API 버전 그룹 (JWT 인증 필요)
	v1 := s.router.Group("/api/v1", auth.JWTMiddleware(auth.JWTConfig{
		Secret: s.cfg.JWTSecret,
		Logger: s.logger,
	}))

	workspaceHandler.RegisterRoutes(v1)
}

// Start HTTP 서버 시작
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작",
		zap.String("address", s.address),
	)

	s.server.Handler = s.router
	return s.router.StartServer(s.server)
}

// Stop HTTP 서버 종료
func (s *Server) Stop() error {
	s.logger.Info("HTTP 서버 종료 중...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.router.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
