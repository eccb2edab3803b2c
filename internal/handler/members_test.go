package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMember_QueuesCredentialsMail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.asOwner(t, http.MethodPost, "/members", map[string]any{
		"fullName": "João Conceição",
		"email":    "joao@darkchannels.com",
		"function": "Editor",
	})
	require.True(t, resp.Success, resp.Message)

	var member domain.Member
	require.NoError(t, json.Unmarshal(resp.Data, &member))
	assert.Regexp(t, regexp.MustCompile(`^joao\.conceicao[0-9]+$`), member.Username)
	assert.True(t, member.IsActive)
	assert.Equal(t, env.owner.ID, member.OwnerID)

	require.Len(t, env.mail.messages, 1)
	msg := env.mail.messages[0]
	assert.Equal(t, domain.MailCreateMember, msg.Type)
	assert.Equal(t, "joao@darkchannels.com", msg.To)

	data := msg.Data.(map[string]any)
	assert.Equal(t, member.Username, data["username"])
	assert.Len(t, data["password"], 12)
	assert.Equal(t, "Dark Channels Studio", data["studio"])
}

func TestCreateMember_Validation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.asOwner(t, http.MethodPost, "/members", map[string]any{
		"fullName": "Ana",
		"email":    "não-é-email",
		"function": "Narradora",
	})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	assert.Empty(t, env.mail.messages)
}

// loginMember 通过 API 创建成员并登录，返回会话令牌
func loginMember(t *testing.T, env *testEnv) (string, *domain.Member) {
	t.Helper()

	resp := env.asOwner(t, http.MethodPost, "/members", map[string]any{
		"fullName": "Maria Souza",
		"email":    "maria@darkchannels.com",
		"function": "Editora",
		"username": "maria.souza",
	})
	require.True(t, resp.Success, resp.Message)
	var member domain.Member
	require.NoError(t, json.Unmarshal(resp.Data, &member))

	password := env.mail.messages[len(env.mail.messages)-1].Data.(map[string]any)["password"].(string)

	resp = env.do(t, http.MethodPost, "/member-auth/login", map[string]any{
		"username": "maria.souza",
		"password": password,
	}, nil)
	require.True(t, resp.Success, resp.Message)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)

	return login.Token, &member
}

func TestMemberLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	loginMember(t, env)

	resp := env.do(t, http.MethodPost, "/member-auth/login", map[string]any{
		"username": "maria.souza",
		"password": "errada",
	}, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "usuário ou senha incorretos", resp.Message)
}

func TestMemberPortal(t *testing.T) {
	env := newTestEnv(t)
	token, member := loginMember(t, env)
	withSession := func(r *http.Request) { r.Header.Set(memberSessionHeader, token) }

	ch := env.addChannel(mwf, []string{"09:00"})
	editing := env.addVideo(ch, domain.StageEditing, false)
	editing.AssigneeID = &member.ID
	script := env.addVideo(ch, domain.StageScript, false)
	script.AssigneeID = &member.ID
	unassigned := env.addVideo(ch, domain.StageEditing, false)

	resp := env.do(t, http.MethodGet, "/member/videos", nil, withSession)
	require.True(t, resp.Success, resp.Message)
	var videos []domain.Video
	require.NoError(t, json.Unmarshal(resp.Data, &videos))
	assert.Len(t, videos, 2)

	resp = env.do(t, http.MethodPost, "/member/videos/"+editing.ID.String()+"/advance", nil, withSession)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, domain.StageReady, env.repo.videos[editing.ID].Stage)

	resp = env.do(t, http.MethodPost, "/member/videos/"+script.ID.String()+"/advance", nil, withSession)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.ErrInvalidStageTransition.Error(), resp.Message)

	resp = env.do(t, http.MethodPost, "/member/videos/"+unassigned.ID.String()+"/advance", nil, withSession)
	assert.False(t, resp.Success)
	assert.Equal(t, "vídeo não encontrado", resp.Message)

	resp = env.do(t, http.MethodPatch, "/member/videos/"+editing.ID.String()+"/drive-link", map[string]any{
		"driveLink": "https://drive.google.com/file/d/abc",
	}, withSession)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, "https://drive.google.com/file/d/abc", env.repo.videos[editing.ID].DriveLink)

	resp = env.do(t, http.MethodGet, "/member/videos", nil, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "membro não autenticado", resp.Message)
}

func TestMemberSessionRevokedOnPasswordReset(t *testing.T) {
	env := newTestEnv(t)
	token, member := loginMember(t, env)
	withSession := func(r *http.Request) { r.Header.Set(memberSessionHeader, token) }

	resp := env.do(t, http.MethodGet, "/member/me", nil, withSession)
	require.True(t, resp.Success, resp.Message)

	resp = env.asOwner(t, http.MethodPost, "/members/"+member.ID.String()+"/reset-password", nil)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, domain.MailResetMember, env.mail.messages[len(env.mail.messages)-1].Type)

	resp = env.do(t, http.MethodGet, "/member/me", nil, withSession)
	assert.False(t, resp.Success)
}

func TestMemberLogout(t *testing.T) {
	env := newTestEnv(t)
	token, _ := loginMember(t, env)
	withSession := func(r *http.Request) { r.Header.Set(memberSessionHeader, token) }

	resp := env.do(t, http.MethodPost, "/member-auth/logout", nil, withSession)
	require.True(t, resp.Success)

	resp = env.do(t, http.MethodGet, "/member/me", nil, withSession)
	assert.False(t, resp.Success)
}

func TestHealthzAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.True(t, resp.Success)

	rec := httptest.NewRecorder()
	env.h.Mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `studio_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}
