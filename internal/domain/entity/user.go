package entity

// User 인증 서비스가 관리하는 사용자. 이 서비스에서는 조회만 합니다.
type User struct {
	ID            string
	Name          string
	Email         string
	AccountStatus string
}

// IsActive 계정이 활성 상태인지 확인
func (u *User) IsActive() bool {
	return u.AccountStatus == "" || u.AccountStatus == "active"
}
