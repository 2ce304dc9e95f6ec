package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wekeepgrowing/semo-workspace/pkg/logger"
)

// ServiceName 헬스 체크에 등록되는 서비스 이름
const ServiceName = "workspace.v1.WorkspaceService"

// Server gRPC 서버 구조체
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// Config gRPC 서버 설정
type Config struct {
	Port       string
	Reflection bool
}

// NewServer gRPC 서버 생성. 헬스 체크 서비스만 제공합니다.
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	server := grpc.NewServer(logger.GrpcServerOptions(zapLogger)...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	// 서버 리플렉션 (개발 환경에서만 사용)
	if cfg.Reflection {
		reflection.Register(server)
	}

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
	}
}

// SetServing 헬스 상태 변경
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// WatchHealth interval마다 check를 실행해 헬스 상태를 갱신합니다. ctx가 끝나면 반환합니다.
func (s *Server) WatchHealth(ctx context.Context, interval time.Duration, check func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, interval)
			err := check(checkCtx)
			cancel()

			if ok := err == nil; ok != serving {
				serving = ok
				s.SetServing(ok)
				if ok {
					s.logger.Info("의존성 복구, SERVING 전환")
				} else {
					s.logger.Warn("의존성 장애, NOT_SERVING 전환", zap.Error(err))
				}
			}
		}
	}
}

// Serve 주어진 리스너로 서버 시작
func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("gRPC 서버 시작",
		zap.String("address", listener.Addr().String()),
	)
	return s.server.Serve(listener)
}

// Start gRPC 서버 시작
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC 서버 리스너 생성 실패: %w", err)
	}
	return s.Serve(listener)
}

// Stop gRPC 서버 중지
func (s *Server) Stop() {
	s.logger.Info("gRPC 서버 종료 중...")
	s.health.Shutdown()
	s.server.GracefulStop()
	s.logger.Info("gRPC 서버 종료 완료")
}
