package seed

import (
	"errors"
	"testing"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryStore struct {
	channels []*domain.Channel
	members  []*domain.Member
	ideas    []*domain.Idea
	videos   []*domain.Video
	failOn   string
}

func (s *memoryStore) CreateChannel(ch *domain.Channel) error {
	if s.failOn == ch.Name {
		return errors.New("duplicate")
	}
	ch.ID = uuid.New()
	s.channels = append(s.channels, ch)
	return nil
}

func (s *memoryStore) CreateMember(m *domain.Member) error {
	m.ID = uuid.New()
	s.members = append(s.members, m)
	return nil
}

func (s *memoryStore) CreateIdea(idea *domain.Idea) error {
	idea.ID = uuid.New()
	s.ideas = append(s.ideas, idea)
	return nil
}

func (s *memoryStore) CreateVideo(v *domain.Video) error {
	v.ID = uuid.New()
	s.videos = append(s.videos, v)
	return nil
}

func TestSeedDemoData(t *testing.T) {
	store := &memoryStore{}
	owner := uuid.New()

	summary, err := SeedDemoData(store, owner, "senha-demo", "darkchannels.com")
	require.NoError(t, err)
	assert.Equal(t, Summary{Channels: 3, Members: 4, Ideas: 3, Videos: 7}, summary)

	moneyMinds := store.channels[0]
	assert.Equal(t, "Money Minds", moneyMinds.Name)
	assert.Equal(t, "3x por semana", moneyMinds.PostingFrequency())

	// 演示频道的发布节奏必须能被 scheduler 使用
	monday := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	for _, ch := range store.channels {
		_, ok := scheduler.NextAvailable(ch.Schedule(), nil, monday, 7)
		assert.True(t, ok, ch.Name)
		assert.Len(t, scheduler.WeekAvailability(ch.Schedule(), monday, nil), len(ch.PostingDays)*len(ch.PostingTimes))
	}

	assert.Equal(t, "ana@darkchannels.com", store.members[0].Email)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.members[0].PasswordHash), []byte("senha-demo")))

	ready := 0
	for _, v := range store.videos {
		assert.Equal(t, owner, v.OwnerID)
		require.NotNil(t, v.AssigneeID)
		if v.ReadyToSchedule() {
			ready++
		}
	}
	assert.Equal(t, 2, ready)
}

func TestSeedDemoData_StopsOnError(t *testing.T) {
	store := &memoryStore{failOn: "Tech Insights"}

	summary, err := SeedDemoData(store, uuid.New(), "senha-demo", "darkchannels.com")
	assert.ErrorContains(t, err, "Tech Insights")
	assert.Equal(t, 1, summary.Channels)
	assert.Empty(t, store.members)
}
