package commands

import (
	"bytes"
	"database/sql"
	"testing"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	owner    *domain.User
	channels []*domain.Channel
	occupied map[uuid.UUID][]scheduler.OccupiedSlot
}

func (s *fakeStore) GetUserByEmail(email string) (*domain.User, error) {
	if s.owner == nil || s.owner.Email != email {
		return nil, sql.ErrNoRows
	}
	return s.owner, nil
}

func (s *fakeStore) GetAllChannels(ownerID uuid.UUID) ([]*domain.Channel, error) {
	channels := []*domain.Channel{}
	for _, ch := range s.channels {
		if ch.OwnerID == ownerID {
			channels = append(channels, ch)
		}
	}
	return channels, nil
}

func (s *fakeStore) GetChannelByID(id uuid.UUID) (*domain.Channel, error) {
	for _, ch := range s.channels {
		if ch.ID == id {
			return ch, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeStore) GetOccupiedSlots(channelID uuid.UUID, from, to time.Time) ([]scheduler.OccupiedSlot, error) {
	return s.occupied[channelID], nil
}

func newTestDeps() (*Deps, *domain.Channel) {
	owner := &domain.User{ID: uuid.New(), Email: "dono@darkchannels.com"}
	ch := &domain.Channel{
		ID:           uuid.New(),
		OwnerID:      owner.ID,
		Name:         "Money Minds",
		PostingDays:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		PostingTimes: []string{"09:00", "14:00", "19:00"},
	}
	monday := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		owner:    owner,
		channels: []*domain.Channel{ch},
		occupied: map[uuid.UUID][]scheduler.OccupiedSlot{
			ch.ID: {{Date: monday, Time: "09:00"}},
		},
	}

	return &Deps{
		Store:           store,
		Location:        time.UTC,
		Now:             func() time.Time { return monday.Add(8 * time.Hour) },
		DefaultOwner:    owner.Email,
		HorizonDays:     30,
		LongHorizonDays: 365,
	}, ch
}

func run(t *testing.T, deps *Deps, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(deps)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	deps, _ := newTestDeps()
	out, err := run(t, deps)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "slots")
}

func TestChannelsList(t *testing.T) {
	deps, ch := newTestDeps()

	out, err := run(t, deps, "channels", "list")
	require.NoError(t, err)
	assert.Contains(t, out, ch.ID.String())
	assert.Contains(t, out, "3x por semana")
	assert.Contains(t, out, "Segunda, Quarta, Sexta")

	_, err = run(t, deps, "channels", "list", "--owner", "ninguem@darkchannels.com")
	assert.ErrorContains(t, err, "não encontrado")
}

func TestSlotsNext(t *testing.T) {
	deps, ch := newTestDeps()

	out, err := run(t, deps, "slots", "next", ch.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Money Minds: Segunda, 20/01 às 14:00\n", out)

	out, err = run(t, deps, "slots", "next", ch.ID.String(), "--from", "2025-01-21")
	require.NoError(t, err)
	assert.Equal(t, "Money Minds: Quarta, 22/01 às 09:00\n", out)

	out, err = run(t, deps, "slots", "next", ch.ID.String(), "--from", "2025-01-21", "--horizon", "1")
	require.NoError(t, err)
	assert.Contains(t, out, domain.ErrNoSlotAvailable.Error())

	_, err = run(t, deps, "slots", "next", ch.ID.String(), "--horizon", "400")
	assert.Error(t, err)

	_, err = run(t, deps, "slots", "next", "nao-e-uuid")
	assert.ErrorContains(t, err, "ID de canal inválido")

	_, err = run(t, deps, "slots", "next", uuid.NewString())
	assert.ErrorContains(t, err, "não encontrado")

	_, err = run(t, deps, "slots", "next", ch.ID.String(), "--from", "20/01/2025")
	assert.ErrorContains(t, err, "AAAA-MM-DD")
}

func TestSlotsWeek(t *testing.T) {
	deps, ch := newTestDeps()

	out, err := run(t, deps, "slots", "week", ch.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Segunda, 20/01 às 09:00")
	assert.Contains(t, out, "ocupado")
	assert.Contains(t, out, "Sexta, 24/01 às 19:00")
	assert.NotContains(t, out, "Terça")
}
