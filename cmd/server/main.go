package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	handlers "github.com/wekeepgrowing/semo-workspace/internal/adapter/handler/http"
	"github.com/wekeepgrowing/semo-workspace/internal/adapter/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/appinit"
	"github.com/wekeepgrowing/semo-workspace/internal/config"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/db"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/grpc"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/http"
)

const healthCheckInterval = 15 * time.Second

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("워크스페이스 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.String("environment", cfg.Service.Environment),
	)

	// 3. 인프라스트럭처 초기화
	infrastructure, err := db.NewInfrastructure(cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer infrastructure.Close()

	// 4. 레포지토리 초기화
	repositories := repository.InitRepositories(infrastructure, cfg.Redis.EventChannel, logger)

	// 5. 유스케이스 초기화
	useCases := appinit.NewUseCases(repositories, infrastructure.EmailTemplates, cfg.Redis.CacheTTL, logger)

	healthCheck := func(ctx context.Context) error {
		if err := infrastructure.Ping(); err != nil {
			return err
		}
		return infrastructure.RedisClient.Ping(ctx).Err()
	}

	// 6. HTTP 서버 생성
	httpServer := http.NewServer(http.Config{
		Port:         cfg.Server.HTTP.Port,
		Timeout:      cfg.Server.HTTP.Timeout,
		Debug:        cfg.Server.HTTP.Debug,
		AllowOrigins: cfg.CORS.AllowOrigins,
		JWTSecret:    cfg.JWT.Secret,
	}, logger)
	httpServer.RegisterRoutes(
		handlers.NewWorkspaceHandler(useCases.WorkspaceUseCase, useCases.WorkspaceUserUseCase, logger),
		healthCheck,
	)

	// 7. gRPC 서버 생성 (헬스 체크 전용)
	grpcServer := grpc.NewServer(grpc.Config{
		Port:       cfg.Server.GRPC.Port,
		Reflection: cfg.Service.Environment != "production",
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go grpcServer.WatchHealth(ctx, healthCheckInterval, healthCheck)

	// 8. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 종료", zap.Error(err))
		}
	}()

	go func() {
		if err := grpcServer.Start(); err != nil {
			logger.Error("gRPC 서버 종료", zap.Error(err))
		}
	}()

	// 9. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	cancel()
	grpcServer.SetServing(false)

	if err := httpServer.Stop(); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}
	grpcServer.Stop()

	logger.Info("서버가 정상적으로 종료되었습니다")
}
