// Package user は認証済みの呼び出し元を表す
package user

// Role はユーザーの権限
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Identity は認証済みユーザー。予約操作には必ず明示的に渡す
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin は管理者権限を持つかを返す
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanAccess は ownerID のリソースを操作できるかを返す
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || (i.UserID != "" && i.UserID == ownerID)
}
