package domain

import (
	"fmt"
	"time"

	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
)

type Channel struct {
	ID           uuid.UUID      `json:"id"`
	OwnerID      uuid.UUID      `json:"ownerID"`
	Name         string         `json:"name"`
	Link         string         `json:"link"`
	Language     string         `json:"language"`
	Niche        string         `json:"niche"`
	SubNiche     string         `json:"subNiche"`
	MicroNiche   string         `json:"microNiche"`
	Color        string         `json:"color"`
	LogoURL      string         `json:"logoURL"`
	PostingDays  []time.Weekday `json:"postingDays"`
	PostingTimes []string       `json:"postingTimes"`
	CreatedAt    time.Time      `json:"createdAt"`
	Version      int32          `json:"-"`
}

// Schedule 返回传给 scheduler 的发布节奏
func (c *Channel) Schedule() scheduler.PostingSchedule {
	return scheduler.PostingSchedule{
		Days:  c.PostingDays,
		Times: c.PostingTimes,
	}
}

// PostingFrequency 根据发布天数生成展示文本
func (c *Channel) PostingFrequency() string {
	switch n := len(c.PostingDays); n {
	case 0:
		return "Sem agenda"
	case 7:
		return "Diário"
	default:
		return fmt.Sprintf("%dx por semana", n)
	}
}
