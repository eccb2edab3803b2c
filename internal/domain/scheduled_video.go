package domain

import (
	"time"

	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
)

type ScheduledStatus string

const (
	ScheduledPending   ScheduledStatus = "agendado"
	ScheduledPublished ScheduledStatus = "publicado"
)

func (s ScheduledStatus) Valid() bool {
	switch s {
	case ScheduledPending, ScheduledPublished:
		return true
	default:
		return false
	}
}

type ScheduledVideo struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"ownerID"`
	ChannelID     uuid.UUID       `json:"channelID"`
	ChannelName   string          `json:"channelName"`
	ChannelColor  string          `json:"channelColor"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ScheduledDate time.Time       `json:"scheduledDate"`
	ScheduledTime string          `json:"scheduledTime"`
	YoutubeLink   string          `json:"youtubeLink"`
	Status        ScheduledStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	Version       int32           `json:"-"`
}

func (v *ScheduledVideo) Slot() scheduler.OccupiedSlot {
	return scheduler.OccupiedSlot{Date: v.ScheduledDate, Time: v.ScheduledTime}
}
