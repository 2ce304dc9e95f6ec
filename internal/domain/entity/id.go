package entity

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// WorkspaceIDPrefix 워크스페이스 ID 접두사
	WorkspaceIDPrefix = "W"

	idDigits = "0123456789"
	idAlnum  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// NewID 접두사 + 숫자 2자리 + 영숫자 9자리 형식의 ID를 생성합니다. 예: W12ABC345XYZ
func NewID(prefix string) (string, error) {
	twoDigits, err := gonanoid.Generate(idDigits, 2)
	if err != nil {
		return "", fmt.Errorf("ID 숫자부 생성 실패: %w", err)
	}

	nineAlnum, err := gonanoid.Generate(idAlnum, 9)
	if err != nil {
		return "", fmt.Errorf("ID 영숫자부 생성 실패: %w", err)
	}

	return strings.ToUpper(prefix + twoDigits + nineAlnum), nil
}
