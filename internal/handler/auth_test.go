package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (f *fakeRepo) GetUserByEmail(email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) UpdateUser(u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (e *testEnv) setOwnerPassword(t *testing.T, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	e.repo.users[e.owner.ID].PasswordHash = string(hash)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.setOwnerPassword(t, "senha-forte-123")

	body := strings.NewReader(`{"email":"dono@darkchannels.com","password":"senha-forte-123"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	env.h.Mux.ServeHTTP(rec, req)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == tokenCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, rec.Body.String())
	assert.True(t, cookie.HttpOnly)

	resp := env.do(t, http.MethodGet, "/my-info", nil, func(r *http.Request) { r.AddCookie(cookie) })
	assert.True(t, resp.Success, resp.Message)
	assert.NotContains(t, string(resp.Data), "senha-forte-123")

	resp = env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "dono@darkchannels.com",
		"password": "errada",
	}, nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "e-mail ou senha incorretos", resp.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/channels", nil, nil)
	assert.False(t, resp.Success)

	resp = env.do(t, http.MethodGet, "/channels", nil, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "lixo"})
	})
	assert.False(t, resp.Success)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.setOwnerPassword(t, "senha-antiga-1")

	resp := env.do(t, http.MethodPost, "/auth/reset-password/require", map[string]string{"email": "ninguem@darkchannels.com"}, nil)
	require.True(t, resp.Success)
	assert.Empty(t, env.mail.messages)

	resp = env.do(t, http.MethodPost, "/auth/reset-password/require", map[string]string{"email": "dono@darkchannels.com"}, nil)
	require.True(t, resp.Success, resp.Message)
	require.Len(t, env.mail.messages, 1)
	assert.Equal(t, domain.MailResetPassword, env.mail.messages[0].Type)

	otp, err := env.redis.Get(resetPasswordOTPKey("dono@darkchannels.com"))
	require.NoError(t, err)

	resp = env.do(t, http.MethodPost, "/auth/reset-password/confirm", map[string]string{
		"email":    "dono@darkchannels.com",
		"otp":      "000000",
		"password": "senha-nova-123",
	}, nil)
	if otp != "000000" {
		assert.False(t, resp.Success)
	}

	resp = env.do(t, http.MethodPost, "/auth/reset-password/confirm", map[string]string{
		"email":    "dono@darkchannels.com",
		"otp":      otp,
		"password": "senha-nova-123",
	}, nil)
	require.True(t, resp.Success, resp.Message)
	assert.False(t, env.redis.Exists(resetPasswordOTPKey("dono@darkchannels.com")))

	hash := env.repo.users[env.owner.ID].PasswordHash
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("senha-nova-123")))
}
