package identity

import (
	"time"

	"github.com/tsaci/backend/internal/domain/identity"
)

// RegisterInput contains the input for user registration
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to supervisor
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserInfo
}

// UserInfo contains basic user information exposed to clients
type UserInfo struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateUserInput contains the input for updating a user
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// NewUserInfo maps a user entity to its client representation
func NewUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
