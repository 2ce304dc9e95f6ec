package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/pkg/config"
	"github.com/wekeepgrowing/semo-workspace/pkg/logger"
)

// ServiceName 설정 파일 이름과 환경 변수 접두사(WORKSPACE_)에 쓰이는 서비스 이름
const ServiceName = "workspace"

// Config 워크스페이스 서비스 설정 구조체
type Config struct {
	Service struct {
		Name        string
		Version     string
		Environment string
		BaseURL     string
	}

	Server struct {
		HTTP struct {
			Port    string
			Timeout time.Duration
			Debug   bool
		}
		GRPC struct {
			Port string
		}
	}

	Database struct {
		Host            string
		Port            int
		Name            string
		User            string
		Password        string
		SSLMode         string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
		SlowThreshold   time.Duration
		AutoMigrate     bool
	}

	Redis struct {
		Host     string
		Port     int
		Password string
		DB       int
		// CacheTTL 사용자별 워크스페이스 목록 캐시 유효 시간
		CacheTTL time.Duration
		// EventChannel 워크스페이스 이벤트 발행 채널
		EventChannel string
	}

	JWT struct {
		Secret string
	}

	Log struct {
		Level  string
		Format string
		Output string
	}

	// Email SMTPHost가 비어 있으면 초대 메일을 보내지 않음
	Email struct {
		SenderEmail string
		SMTPHost    string
		SMTPPort    int
		SMTPUser    string
		SMTPPass    string
	}

	// SpiceDB Address가 비어 있으면 권한 관계를 기록하지 않음
	SpiceDB struct {
		Address string
		Token   string
	}

	CORS struct {
		AllowOrigins []string
	}

	Logger *zap.Logger
}

// 설정 파일에 값이 없을 때 사용하는 기본값
var defaults = map[string]interface{}{
	"service.name":               ServiceName,
	"service.environment":        "dev",
	"server.http.port":           "8080",
	"server.http.timeout":        "30s",
	"server.grpc.port":           "9090",
	"database.port":              5432,
	"database.sslmode":           "disable",
	"database.max_open_conns":    20,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "1h",
	"database.slow_threshold":    "200ms",
	"redis.port":                 6379,
	"redis.cache_ttl":            "5m",
	"redis.event_channel":        "workspace.events",
	"log.level":                  "info",
	"log.format":                 "json",
	"log.output":                 "stdout",
	"email.smtp_port":            587,
	"cors.allow_origins":         []string{"*"},
}

// Load 설정 파일과 환경 변수로부터 설정을 읽고 로거를 생성합니다.
func Load(opts ...config.Option) (*Config, error) {
	opts = append([]config.Option{config.WithDefaults(defaults)}, opts...)
	cfg, err := config.Load(ServiceName, opts...)
	if err != nil {
		return nil, err
	}

	appConfig := FromSource(cfg)
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	appConfig.Logger, err = logger.NewZapLogger(logger.Config{
		Level:       appConfig.Log.Level,
		Format:      appConfig.Log.Format,
		Output:      appConfig.Log.Output,
		Development: appConfig.Server.HTTP.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("로거 생성 실패: %w", err)
	}

	return appConfig, nil
}

// FromSource 설정 값을 구조체로 옮깁니다.
func FromSource(cfg config.Config) *Config {
	c := &Config{}

	c.Service.Name = cfg.GetString("service.name")
	c.Service.Version = cfg.GetString("service.version")
	c.Service.Environment = cfg.GetString("service.environment")
	c.Service.BaseURL = cfg.GetString("service.base_url")

	c.Server.HTTP.Port = cfg.GetString("server.http.port")
	c.Server.HTTP.Timeout = cfg.GetDuration("server.http.timeout")
	c.Server.HTTP.Debug = cfg.GetBool("server.http.debug")
	c.Server.GRPC.Port = cfg.GetString("server.grpc.port")

	c.Database.Host = cfg.GetString("database.host")
	c.Database.Port = cfg.GetInt("database.port")
	c.Database.Name = cfg.GetString("database.name")
	c.Database.User = cfg.GetString("database.user")
	c.Database.Password = cfg.GetString("database.password")
	c.Database.SSLMode = cfg.GetString("database.sslmode")
	c.Database.MaxOpenConns = cfg.GetInt("database.max_open_conns")
	c.Database.MaxIdleConns = cfg.GetInt("database.max_idle_conns")
	c.Database.ConnMaxLifetime = cfg.GetDuration("database.conn_max_lifetime")
	c.Database.SlowThreshold = cfg.GetDuration("database.slow_threshold")
	c.Database.AutoMigrate = cfg.GetBool("database.auto_migrate")

	c.Redis.Host = cfg.GetString("redis.host")
	c.Redis.Port = cfg.GetInt("redis.port")
	c.Redis.Password = cfg.GetString("redis.password")
	c.Redis.DB = cfg.GetInt("redis.db")
	c.Redis.CacheTTL = cfg.GetDuration("redis.cache_ttl")
	c.Redis.EventChannel = cfg.GetString("redis.event_channel")

	c.JWT.Secret = cfg.GetString("jwt.secret")

	c.Log.Level = cfg.GetString("log.level")
	c.Log.Format = cfg.GetString("log.format")
	c.Log.Output = cfg.GetString("log.output")

	c.Email.SenderEmail = cfg.GetString("email.sender_email")
	c.Email.SMTPHost = cfg.GetString("email.smtp_host")
	c.Email.SMTPPort = cfg.GetInt("email.smtp_port")
	c.Email.SMTPUser = cfg.GetString("email.smtp_user")
	c.Email.SMTPPass = cfg.GetString("email.smtp_pass")

	c.SpiceDB.Address = cfg.GetString("spicedb.address")
	c.SpiceDB.Token = cfg.GetString("spicedb.token")

	c.CORS.AllowOrigins = cfg.GetStringSlice("cors.allow_origins")

	return c
}

// Validate 서버 기동에 반드시 필요한 값이 있는지 확인합니다.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret 설정이 필요합니다")
	}
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database.host, database.name 설정이 필요합니다")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("redis.host 설정이 필요합니다")
	}
	return nil
}

// DSN PostgreSQL 접속 문자열
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// RedisAddr host:port 형식의 Redis 주소
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
