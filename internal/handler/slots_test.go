package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mwf = []time.Weekday{time.Monday, time.Wednesday, time.Friday}

func TestGetNextSlot(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00", "14:00", "19:00"})
	monday := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	env.occupy(ch, monday, "09:00")
	env.occupy(ch, monday, "14:00")

	resp := env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot", nil)
	require.True(t, resp.Success, resp.Message)

	var slot slotResponse
	require.NoError(t, json.Unmarshal(resp.Data, &slot))
	assert.Equal(t, "2025-01-20", slot.Date)
	assert.Equal(t, "19:00", slot.Time)
	assert.Equal(t, "Segunda", slot.Weekday)
	assert.Equal(t, "Segunda, 20/01 às 19:00", slot.Display)
	assert.True(t, slot.Available)
}

func TestGetNextSlot_FromAndHorizon(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel([]time.Weekday{time.Sunday}, []string{"10:00"})

	resp := env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?from=2025-01-20&horizon=6", nil)
	require.True(t, resp.Success)
	assert.Equal(t, "null", string(resp.Data))

	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?from=2025-01-20&horizon=7", nil)
	require.True(t, resp.Success)
	var slot slotResponse
	require.NoError(t, json.Unmarshal(resp.Data, &slot))
	assert.Equal(t, "Domingo, 26/01 às 10:00", slot.Display)

	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?horizon=366", nil)
	assert.False(t, resp.Success)

	for _, bad := range []string{"-1", "abc"} {
		resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?horizon="+bad, nil)
		assert.False(t, resp.Success, bad)
	}
}

func TestGetNextSlot_ZeroHorizonFindsNothing(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00"})

	// 今天（周一）本来就有空闲时段，但 0 天的范围内不搜索
	resp := env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?horizon=0", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, domain.ErrNoSlotAvailable.Error(), resp.Message)
	assert.Equal(t, "null", string(resp.Data))

	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/availability?days=0", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "[]", string(resp.Data))

	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?from=20-01-2025", nil)
	assert.False(t, resp.Success)
}

func TestGetNextSlot_NoPostingDays(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel([]time.Weekday{}, []string{"09:00"})

	resp := env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot?horizon=365", nil)
	require.True(t, resp.Success)
	assert.Equal(t, "null", string(resp.Data))
}

func TestGetAvailability(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00", "14:00"})
	env.occupy(ch, time.Date(2025, time.January, 22, 0, 0, 0, 0, time.UTC), "14:00")

	resp := env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/availability?start=2025-01-20", nil)
	require.True(t, resp.Success, resp.Message)

	var slots []slotResponse
	require.NoError(t, json.Unmarshal(resp.Data, &slots))
	require.Len(t, slots, 6)
	assert.Equal(t, "Segunda, 20/01 às 09:00", slots[0].Display)
	assert.Equal(t, "Quarta, 22/01 às 14:00", slots[3].Display)
	assert.False(t, slots[3].Available)
	assert.True(t, slots[5].Available)

	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/availability?start=2025-01-20&days=14", nil)
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, &slots))
	assert.Len(t, slots, 12)
}

func TestChannelsAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00"})

	resp := env.do(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot", nil, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "usuário não autenticado", resp.Message)

	ch.OwnerID = uuid.New()
	resp = env.asOwner(t, http.MethodGet, "/channels/"+ch.ID.String()+"/next-slot", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "canal não encontrado", resp.Message)

	resp = env.asOwner(t, http.MethodGet, "/channels/not-a-uuid/next-slot", nil)
	assert.Equal(t, "ID inválido", resp.Message)
}

func TestCreateChannel(t *testing.T) {
	env := newTestEnv(t)

	resp := env.asOwner(t, http.MethodPost, "/channels", map[string]any{
		"name":         "Tech Insights",
		"color":        "#3b82f6",
		"postingDays":  []string{"Terça", "quinta-feira", "terca"},
		"postingTimes": []string{"18:00", "10:00", "18:00"},
	})
	require.True(t, resp.Success, resp.Message)

	var ch channelResponse
	require.NoError(t, json.Unmarshal(resp.Data, &ch))
	assert.Equal(t, []string{"Terça", "Quinta"}, ch.PostingDayNames)
	assert.Equal(t, []string{"18:00", "10:00"}, ch.PostingTimes)
	assert.Equal(t, "2x por semana", ch.PostingFrequency)

	resp = env.asOwner(t, http.MethodPost, "/channels", map[string]any{
		"name":         "Lifestyle Hub",
		"postingDays":  []string{"Sábado"},
		"postingTimes": []string{"9h"},
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "HH:MM")

	resp = env.asOwner(t, http.MethodPost, "/channels", map[string]any{
		"name":        "Lifestyle Hub",
		"postingDays": []string{"feriado"},
	})
	assert.False(t, resp.Success)

	resp = env.asOwner(t, http.MethodPost, "/channels", map[string]any{
		"name":        "Lifestyle Hub",
		"postingDays": []string{},
	})
	assert.False(t, resp.Success)
	assert.Equal(t, "selecione pelo menos um dia de postagem", resp.Message)
}
