package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/darkchannels/studio/backend/internal/config"
	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/metrics"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeRepo 只实现测试用到的方法，其余方法调用时会因为嵌入的 nil 接口而 panic
type fakeRepo struct {
	Repository

	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	members   map[uuid.UUID]*domain.Member
	channels  map[uuid.UUID]*domain.Channel
	videos    map[uuid.UUID]*domain.Video
	ideas     map[uuid.UUID]*domain.Idea
	scheduled []*domain.ScheduledVideo

	competitors map[uuid.UUID]*domain.CompetitorChannel
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uuid.UUID]*domain.User{},
		members:  map[uuid.UUID]*domain.Member{},
		channels: map[uuid.UUID]*domain.Channel{},
		videos:   map[uuid.UUID]*domain.Video{},
		ideas:    map[uuid.UUID]*domain.Idea{},

		competitors: map[uuid.UUID]*domain.CompetitorChannel{},
	}
}

func (f *fakeRepo) Ping(ctx context.Context) error { return nil }

func (f *fakeRepo) GetUserByID(id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) CreateChannel(ch *domain.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch.ID = uuid.New()
	ch.CreatedAt = time.Now()
	f.channels[ch.ID] = ch
	return nil
}

func (f *fakeRepo) GetChannelByID(id uuid.UUID) (*domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeRepo) GetOccupiedSlots(channelID uuid.UUID, from, to time.Time) ([]scheduler.OccupiedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	day := func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	slots := []scheduler.OccupiedSlot{}
	for _, sv := range f.scheduled {
		d := day(sv.ScheduledDate)
		if sv.ChannelID != channelID || d.Before(day(from)) || d.After(day(to)) {
			continue
		}
		slots = append(slots, sv.Slot())
	}
	return slots, nil
}

func (f *fakeRepo) GetVideoByID(id uuid.UUID) (*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *v
	return &cp, nil
}

func (f *fakeRepo) GetVideos(ownerID uuid.UUID, filter repository.VideoFilter) ([]*domain.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	videos := []*domain.Video{}
	for _, v := range f.videos {
		if v.OwnerID != ownerID {
			continue
		}
		if filter.AssigneeID != nil && (v.AssigneeID == nil || *v.AssigneeID != *filter.AssigneeID) {
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

func (f *fakeRepo) UpdateVideo(v *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *v
	f.videos[v.ID] = &cp
	return nil
}

func (f *fakeRepo) ScheduleVideo(v *domain.Video, sv *domain.ScheduledVideo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.videos, v.ID)
	sv.ID = uuid.New()
	f.scheduled = append(f.scheduled, sv)
	return nil
}

func (f *fakeRepo) CreateMember(m *domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = uuid.New()
	f.members[m.ID] = m
	return nil
}

func (f *fakeRepo) GetMemberByID(id uuid.UUID) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) GetMemberByUsername(username string) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.Username == username {
			cp := *m
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakePublisher struct {
	messages []domain.MailMessage
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	var m domain.MailMessage
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return err
	}
	p.messages = append(p.messages, m)
	return nil
}

type testEnv struct {
	h         *Handler
	repo      *fakeRepo
	mail      *fakePublisher
	redis     *miniredis.Miniredis
	owner     *domain.User
	ownerAuth *http.Cookie
}

// 2025-01-20 是星期一
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 1
	cfg.Redis.OperationExpiration = 5
	cfg.RabbitMQ.Queue = "email_queue"
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.NewMember.PasswordLength = 12
	cfg.MemberSession.Expiration = 3600
	cfg.Email.StudioName = "Dark Channels Studio"
	cfg.Scheduling.NextSlotHorizonDays = scheduler.DefaultHorizonDays
	cfg.Scheduling.LongHorizonDays = scheduler.LongHorizonDays
	cfg.Scheduling.BookingLockTTL = 10
	cfg.Scheduling.Timezone = "America/Sao_Paulo"

	repo := newFakeRepo()
	pub := &fakePublisher{}

	h, err := NewHandler(cfg, repo, pub, rdb, metrics.New())
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2025, time.January, 20, 8, 30, 0, 0, h.location) }
	h.RegisterRoutes()

	owner := &domain.User{ID: uuid.New(), Email: "dono@darkchannels.com", FullName: "Dono", Role: domain.RoleOwner}
	repo.users[owner.ID] = owner

	return &testEnv{h: h, repo: repo, mail: pub, redis: mr, owner: owner, ownerAuth: signedCookie(t, cfg, owner)}
}

func signedCookie(t *testing.T, cfg *config.Config, user *domain.User) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Subject:   user.ID.String(),
		},
	})
	ss, err := token.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)
	return &http.Cookie{Name: tokenCookieName, Value: ss}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, mutate func(*http.Request)) envelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if mutate != nil {
		mutate(req)
	}

	rec := httptest.NewRecorder()
	e.h.Mux.ServeHTTP(rec, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func (e *testEnv) asOwner(t *testing.T, method, path string, body any) envelope {
	t.Helper()
	return e.do(t, method, path, body, func(r *http.Request) { r.AddCookie(e.ownerAuth) })
}

func (e *testEnv) addChannel(days []time.Weekday, times []string) *domain.Channel {
	ch := &domain.Channel{
		ID:           uuid.New(),
		OwnerID:      e.owner.ID,
		Name:         "Money Minds",
		Color:        "#22c55e",
		PostingDays:  days,
		PostingTimes: times,
	}
	e.repo.channels[ch.ID] = ch
	return ch
}

func (e *testEnv) occupy(ch *domain.Channel, date time.Time, t string) {
	e.repo.scheduled = append(e.repo.scheduled, &domain.ScheduledVideo{
		ID:            uuid.New(),
		OwnerID:       ch.OwnerID,
		ChannelID:     ch.ID,
		ScheduledDate: date,
		ScheduledTime: t,
		Status:        domain.ScheduledPending,
	})
}

func (f *fakeRepo) UpdateMember(m *domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.members[m.ID] = &cp
	return nil
}

func (f *fakeRepo) GetIdeaByID(id uuid.UUID) (*domain.Idea, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idea, ok := f.ideas[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *idea
	return &cp, nil
}

func (f *fakeRepo) UpdateIdea(idea *domain.Idea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ideas[idea.ID]; !ok {
		return sql.ErrNoRows
	}
	idea.Version++
	cp := *idea
	f.ideas[idea.ID] = &cp
	return nil
}

func (f *fakeRepo) ApproveIdea(idea *domain.Idea, video *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idea.Status = domain.IdeaApproved
	idea.Version++
	cp := *idea
	f.ideas[idea.ID] = &cp

	video.ID = uuid.New()
	video.CreatedAt = time.Now()
	f.videos[video.ID] = video
	return nil
}

func (f *fakeRepo) SendVideoBackToIdeas(v *domain.Video, idea *domain.Idea) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.videos[v.ID]; !ok {
		return sql.ErrNoRows
	}
	delete(f.videos, v.ID)

	idea.ID = uuid.New()
	idea.CreatedAt = time.Now()
	f.ideas[idea.ID] = idea
	return nil
}

func (f *fakeRepo) GetScheduledVideoByID(id uuid.UUID) (*domain.ScheduledVideo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sv := range f.scheduled {
		if sv.ID == id {
			cp := *sv
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) UpdateScheduledVideo(sv *domain.ScheduledVideo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, old := range f.scheduled {
		if old.ID == sv.ID {
			sv.Version++
			cp := *sv
			f.scheduled[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeRepo) UnscheduleVideo(sv *domain.ScheduledVideo, v *domain.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, old := range f.scheduled {
		if old.ID == sv.ID {
			f.scheduled = append(f.scheduled[:i], f.scheduled[i+1:]...)
			v.ID = uuid.New()
			v.CreatedAt = time.Now()
			f.videos[v.ID] = v
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeRepo) CreateCompetitor(c *domain.CompetitorChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	cp := *c
	f.competitors[c.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAllCompetitors(ownerID uuid.UUID) ([]*domain.CompetitorChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	competitors := []*domain.CompetitorChannel{}
	for _, c := range f.competitors {
		if c.OwnerID == ownerID {
			cp := *c
			competitors = append(competitors, &cp)
		}
	}
	return competitors, nil
}

func (f *fakeRepo) GetCompetitorByID(id uuid.UUID) (*domain.CompetitorChannel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.competitors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) UpdateCompetitor(c *domain.CompetitorChannel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.competitors[c.ID]; !ok {
		return sql.ErrNoRows
	}
	c.Version++
	cp := *c
	f.competitors[c.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCompetitor(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.competitors, id)
	return nil
}
