package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxWorkspaceNameLength 워크스페이스 이름 최대 길이(문자 수)
	MaxWorkspaceNameLength = 250
	// MaxWorkspaceDescriptionLength 워크스페이스 설명 최대 길이(문자 수)
	MaxWorkspaceDescriptionLength = 1000
)

var (
	ErrWorkspaceNameRequired       = errors.New("워크스페이스 이름은 필수입니다")
	ErrWorkspaceNameTooLong        = errors.New("워크스페이스 이름은 250자 이하여야 합니다")
	ErrWorkspaceDescriptionTooLong = errors.New("워크스페이스 설명은 1000자 이하여야 합니다")
)

// Workspace 사용자와 리소스를 묶는 작업 공간
type Workspace struct {
	ID   string
	Name string
	// Description nil이면 설명 없음. 빈 문자열과 구분됩니다.
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWorkspace 워크스페이스 생성 팩토리 함수. 이름은 앞뒤 공백을 제거해 저장합니다.
func NewWorkspace(name string, description *string, now time.Time) (*Workspace, error) {
	name, err := validateWorkspaceFields(name, description)
	if err != nil {
		return nil, err
	}

	id, err := NewID(WorkspaceIDPrefix)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		ID:          id,
		Name:        name,
		Description: copyString(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update 이름과 설명을 교체합니다. ID와 CreatedAt은 바뀌지 않습니다.
func (w *Workspace) Update(name string, description *string, now time.Time) error {
	name, err := validateWorkspaceFields(name, description)
	if err != nil {
		return err
	}

	w.Name = name
	w.Description = copyString(description)
	w.UpdatedAt = now
	return nil
}

func validateWorkspaceFields(name string, description *string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrWorkspaceNameRequired
	}
	if utf8.RuneCountInString(name) > MaxWorkspaceNameLength {
		return "", ErrWorkspaceNameTooLong
	}
	if description != nil && utf8.RuneCountInString(*description) > MaxWorkspaceDescriptionLength {
		return "", ErrWorkspaceDescriptionTooLong
	}
	return name, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
