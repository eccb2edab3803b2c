package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompetitorChannel 是用于参考的竞品频道笔记
type CompetitorChannel struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerID"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Niche     string    `json:"niche"`
	Details   string    `json:"details"`
	Note      string    `json:"note"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
