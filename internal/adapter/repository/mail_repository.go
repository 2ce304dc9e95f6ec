package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/domain/repository"
	"github.com/wekeepgrowing/semo-workspace/internal/infrastructure/mail"
)

// MailRepositoryImpl SMTP 메일 저장소 구현체
type MailRepositoryImpl struct {
	smtpClient *mail.SMTPClient
}

// NewMailRepository SMTP 클라이언트가 nil이면 발송을 건너뛰는 구현체를 반환합니다.
func NewMailRepository(smtpClient *mail.SMTPClient, logger *zap.Logger) repository.MailRepository {
	if smtpClient == nil {
		return &noopMailRepository{logger: logger}
	}
	return &MailRepositoryImpl{smtpClient: smtpClient}
}

func (r *MailRepositoryImpl) SendMail(ctx context.Context, to, subject, body string) error {
	return r.smtpClient.SendMail(ctx, to, subject, body)
}

type noopMailRepository struct {
	logger *zap.Logger
}

func (r *noopMailRepository) SendMail(ctx context.Context, to, subject, body string) error {
	r.logger.Debug("SMTP 미설정으로 메일 발송 생략", zap.String("to", to), zap.String("subject", subject))
	return nil
}
