package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveVideo(t *testing.T) {
	invalid := domain.ErrInvalidStageTransition.Error()

	tests := []struct {
		name      string
		from      domain.VideoStage
		to        string
		wantOK    bool
		wantStage domain.VideoStage
		wantMsg   string
	}{
		{"next column", domain.StageScript, "audio", true, domain.StageAudio, "vídeo movido para " + domain.StageAudio.Title()},
		{"skip columns", domain.StageIdeas, "pronto", true, domain.StageReady, "vídeo movido para " + domain.StageReady.Title()},
		{"backwards", domain.StageReady, "roteiro", true, domain.StageScript, "vídeo movido para " + domain.StageScript.Title()},
		{"same column", domain.StageEditing, "edicao", false, domain.StageEditing, invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ch := env.addChannel(mwf, []string{"09:00"})
			v := env.addVideo(ch, tt.from, false)

			resp := env.asOwner(t, http.MethodPost, "/videos/"+v.ID.String()+"/move", map[string]string{"stage": tt.to})
			assert.Equal(t, tt.wantOK, resp.Success, resp.Message)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Equal(t, tt.wantStage, env.repo.videos[v.ID].Stage)
		})
	}
}

func TestMoveVideo_RejectsUnknownStage(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00"})
	v := env.addVideo(ch, domain.StageAudio, false)

	for _, body := range []map[string]string{{"stage": "lixeira"}, {}} {
		resp := env.asOwner(t, http.MethodPost, "/videos/"+v.ID.String()+"/move", body)
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Message)
	}
	assert.Equal(t, domain.StageAudio, env.repo.videos[v.ID].Stage)
}

func TestSendVideoBackToIdeas(t *testing.T) {
	env := newTestEnv(t)
	ch := env.addChannel(mwf, []string{"09:00"})
	v := env.addVideo(ch, domain.StageEditing, true)

	resp := env.asOwner(t, http.MethodPost, "/videos/"+v.ID.String()+"/back-to-ideas", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "vídeo devolvido para o banco de ideias", resp.Message)

	var idea domain.Idea
	require.NoError(t, json.Unmarshal(resp.Data, &idea))
	assert.Equal(t, domain.IdeaPending, idea.Status)
	assert.Equal(t, v.Title, idea.Title)
	assert.Equal(t, ch.ID, idea.ChannelID)

	_, stillOnBoard := env.repo.videos[v.ID]
	assert.False(t, stillOnBoard)
	require.Contains(t, env.repo.ideas, idea.ID)

	// 视频已经不存在，第二次请求找不到记录
	resp = env.asOwner(t, http.MethodPost, "/videos/"+v.ID.String()+"/back-to-ideas", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "vídeo não encontrado", resp.Message)
	assert.Len(t, env.repo.ideas, 1)
}
