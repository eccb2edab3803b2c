package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) MemberLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	member, err := h.repository.GetMemberByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "usuário ou senha incorretos")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "usuário ou senha incorretos")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !member.IsActive {
		h.errorResponse(w, r, "acesso do membro desativado")
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	token, session, err := h.sessions.Create(ctx, member)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "login realizado com sucesso", map[string]any{
		"token":     token,
		"expiresAt": session.ExpiresAt,
		"member":    member,
	})
}

func (h *Handler) MemberLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(memberSessionHeader)
	if token == "" {
		h.successResponse(w, r, "logout realizado com sucesso", nil)
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	if err := h.sessions.Delete(ctx, token); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "logout realizado com sucesso", nil)
}

func (h *Handler) GetMemberMe(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Member)
	h.successResponse(w, r, "dados do membro obtidos com sucesso", member)
}

func (h *Handler) GetMemberVideos(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(MemberCtx).(*domain.Member)

	videos, err := h.repository.GetVideos(member.OwnerID, repository.VideoFilter{AssigneeID: &member.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "tarefas obtidas com sucesso", videos)
}

// AdvanceMemberVideo 成员只能把剪辑中的视频标记为就绪
func (h *Handler) AdvanceMemberVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	next, ok := v.Stage.MemberCanAdvance()
	if !ok {
		h.errorResponse(w, r, domain.ErrInvalidStageTransition.Error())
		return
	}

	v.Stage = next
	if err := h.repository.UpdateVideo(v); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo movido para "+next.Title(), v)
}

func (h *Handler) UpdateMemberDriveLink(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	var req struct {
		DriveLink string `json:"driveLink" validate:"required,url"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	v.DriveLink = req.DriveLink
	if err := h.repository.UpdateVideo(v); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "link do Drive atualizado", v)
}
