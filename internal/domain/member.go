package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member 是负责人邀请的团队成员，使用独立的会话令牌登录
type Member struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerID"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Function     string    `json:"function"` // 例如 Roteirista、Editor、Narrador
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// MemberSession 保存在 redis 中
type MemberSession struct {
	MemberID  uuid.UUID `json:"memberID"`
	OwnerID   uuid.UUID `json:"ownerID"`
	ExpiresAt time.Time `json:"expiresAt"`
}
