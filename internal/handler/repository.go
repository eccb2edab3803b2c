package handler

import (
	"context"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
)

// Repository 是 handler 依赖的持久层，由 *repository.Repository 实现
type Repository interface {
	Ping(ctx context.Context) error

	GetUserByID(id uuid.UUID) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	UpdateUser(user *domain.User) error

	CreateMember(member *domain.Member) error
	GetAllMembers(ownerID uuid.UUID) ([]*domain.Member, error)
	GetMemberByID(id uuid.UUID) (*domain.Member, error)
	GetMemberByUsername(username string) (*domain.Member, error)
	UpdateMember(member *domain.Member) error
	DeleteMember(id uuid.UUID) error

	CreateChannel(ch *domain.Channel) error
	GetAllChannels(ownerID uuid.UUID) ([]*domain.Channel, error)
	GetChannelByID(id uuid.UUID) (*domain.Channel, error)
	UpdateChannel(ch *domain.Channel) error
	DeleteChannel(id uuid.UUID) error

	CreateIdea(idea *domain.Idea) error
	GetIdeas(ownerID uuid.UUID, filter repository.IdeaFilter) ([]*domain.Idea, error)
	GetIdeaByID(id uuid.UUID) (*domain.Idea, error)
	UpdateIdea(idea *domain.Idea) error
	DeleteIdea(id uuid.UUID) error
	ApproveIdea(idea *domain.Idea, video *domain.Video) error

	CreateVideo(v *domain.Video) error
	GetVideos(ownerID uuid.UUID, filter repository.VideoFilter) ([]*domain.Video, error)
	GetVideoByID(id uuid.UUID) (*domain.Video, error)
	UpdateVideo(v *domain.Video) error
	DeleteVideo(id uuid.UUID) error
	SendVideoBackToIdeas(v *domain.Video, idea *domain.Idea) error

	GetScheduledVideos(ownerID uuid.UUID, filter repository.ScheduledVideoFilter) ([]*domain.ScheduledVideo, error)
	GetScheduledVideoByID(id uuid.UUID) (*domain.ScheduledVideo, error)
	GetOccupiedSlots(channelID uuid.UUID, from, to time.Time) ([]scheduler.OccupiedSlot, error)
	ScheduleVideo(v *domain.Video, sv *domain.ScheduledVideo) error
	UpdateScheduledVideo(sv *domain.ScheduledVideo) error
	UnscheduleVideo(sv *domain.ScheduledVideo, v *domain.Video) error

	CreateCompetitor(c *domain.CompetitorChannel) error
	GetAllCompetitors(ownerID uuid.UUID) ([]*domain.CompetitorChannel, error)
	GetCompetitorByID(id uuid.UUID) (*domain.CompetitorChannel, error)
	UpdateCompetitor(c *domain.CompetitorChannel) error
	DeleteCompetitor(id uuid.UUID) error
}

var _ Repository = (*repository.Repository)(nil)
