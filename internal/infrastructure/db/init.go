package db

import (
	"errors"
	"fmt"

	"github.com/authzed/authzed-go/v1"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/semo-workspace/internal/config"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/authz"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/mail"
	"github.com/wekeepgrowing/semo-workspace/pkg/messaging"
)

// Infrastructure 외부 연결 모음
type Infrastructure struct {
	DB             *gorm.DB
	RedisClient    *redis.Client
	Broker         messaging.Broker
	EmailTemplates *mail.EmailTemplateService
	// SMTPClient SMTP 설정이 없으면 nil
	SMTPClient *mail.SMTPClient
	// SpiceDB 주소 설정이 없으면 nil
	SpiceDB *authzed.Client

	logger *zap.Logger
}

// NewInfrastructure 인프라스트럭처 초기화
func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infra := &Infrastructure{logger: logger}

	var err error
	infra.DB, err = NewPostgresDB(Config{
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		SlowThreshold:   cfg.Database.SlowThreshold,
		Debug:           cfg.Server.HTTP.Debug,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(infra.DB); err != nil {
			infra.Close()
			return nil, err
		}
		logger.Info("데이터베이스 마이그레이션 완료")
	}

	infra.RedisClient, err = NewRedisClient(RedisConfig{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}

	infra.Broker, err = messaging.NewRedisBroker(messaging.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("이벤트 브로커 연결 실패: %w", err)
	}

	infra.EmailTemplates = mail.NewEmailTemplateService(cfg.Service.BaseURL, "SEMO")
	if cfg.Email.SMTPHost != "" {
		infra.SMTPClient = mail.NewSMTPClient(mail.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUser,
			Password: cfg.Email.SMTPPass,
			From:     cfg.Email.SenderEmail,
			FromName: "SEMO",
		}, logger)
	}

	infra.SpiceDB, err = authz.NewSpiceDBClient(authz.Config{
		Address: cfg.SpiceDB.Address,
		Token:   cfg.SpiceDB.Token,
	}, logger)
	if err != nil {
		infra.Close()
		return nil, err
	}

	logger.Info("인프라스트럭처 초기화 완료",
		zap.Bool("smtp", infra.SMTPClient != nil),
		zap.Bool("spicedb", infra.SpiceDB != nil),
	)
	return infra, nil
}

// Ping 데이터베이스 연결 상태 확인
func (i *Infrastructure) Ping() error {
	sqlDB, err := i.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	var errs []error

	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("데이터베이스 연결 종료 실패: %w", err))
			}
		}
	}
	if i.RedisClient != nil {
		if err := i.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("Redis 연결 종료 실패: %w", err))
		}
	}
	if i.Broker != nil {
		if err := i.Broker.Close(); err != nil {
			errs = append(errs, fmt.Errorf("이벤트 브로커 종료 실패: %w", err))
		}
	}

	if i.logger != nil {
		i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	}
	return errors.Join(errs...)
}
