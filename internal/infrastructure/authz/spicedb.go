package authz

import (
	"context"
	"fmt"

	"github.com/authzed/authzed-go/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Config SpiceDB 접속 설정
type Config struct {
	Address string
	Token   string
}

// NewSpiceDBClient SpiceDB 클라이언트를 생성합니다. 주소가 비어 있으면 nil, nil을 반환합니다.
func NewSpiceDBClient(cfg Config, logger *zap.Logger) (*authzed.Client, error) {
	if cfg.Address == "" {
		logger.Info("SpiceDB 주소가 없어 권한 관계 기록을 사용하지 않습니다")
		return nil, nil
	}

	client, err := authzed.NewClient(
		cfg.Address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithPerRPCCredentials(tokenAuth{token: cfg.Token}),
	)
	if err != nil {
		return nil, fmt.Errorf("SpiceDB 클라이언트 생성 실패: %w", err)
	}

	logger.Info("SpiceDB 클라이언트 초기화 완료", zap.String("address", cfg.Address))
	return client, nil
}

// tokenAuth 요청마다 Bearer 토큰을 붙이는 PerRPCCredentials 구현체
type tokenAuth struct {
	token string
}

func (t tokenAuth) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return map[string]string{
		"authorization": "Bearer " + t.token,
	}, nil
}

// RequireTransportSecurity insecure 전송을 사용하므로 false
func (t tokenAuth) RequireTransportSecurity() bool {
	return false
}
