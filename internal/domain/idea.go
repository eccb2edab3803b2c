package domain

import (
	"time"

	"github.com/google/uuid"
)

type IdeaStatus string

const (
	IdeaPending  IdeaStatus = "pendente"
	IdeaApproved IdeaStatus = "aprovada"
	IdeaRejected IdeaStatus = "rejeitada"
)

func (s IdeaStatus) Valid() bool {
	switch s {
	case IdeaPending, IdeaApproved, IdeaRejected:
		return true
	default:
		return false
	}
}

// CanBecome 描述创意库中允许的状态变化
// 待定的创意可以被批准或拒绝，批准或拒绝后只能恢复为待定
func (s IdeaStatus) CanBecome(next IdeaStatus) bool {
	switch s {
	case IdeaPending:
		return next == IdeaApproved || next == IdeaRejected
	case IdeaApproved, IdeaRejected:
		return next == IdeaPending
	default:
		return false
	}
}

type Idea struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerID"`
	ChannelID   uuid.UUID  `json:"channelID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      IdeaStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	Version     int32      `json:"-"`
}
