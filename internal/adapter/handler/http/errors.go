package http

import (
	domainErrors "github.com/wekeepgrowing/semo-workspace/internal/domain/errors"
	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// toAppError 도메인 에러를 응답용 AppError로 변환합니다.
// WorkspaceError.Error()에는 사용자/워크스페이스 ID가 포함되므로 Message만 노출합니다.
func toAppError(err error) error {
	var wsErr *domainErrors.WorkspaceError
	if apperrors.As(err, &wsErr) {
		return apperrors.NewAppError(wsErr.Code(), wsErr.Message, err)
	}
	return err
}
