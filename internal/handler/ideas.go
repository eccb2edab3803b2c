package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/google/uuid"
)

// ownedChannel 加载属于当前负责人的频道，失败时已经写好响应
func (h *Handler) ownedChannel(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*domain.Channel, bool) {
	ch, err := h.repository.GetChannelByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "canal não encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if ch.OwnerID != h.ownerID(r) {
		h.errorResponse(w, r, "canal não encontrado")
		return nil, false
	}

	return ch, true
}

func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID   uuid.UUID `json:"channelID" validate:"required"`
		Title       string    `json:"title" validate:"required,max=200"`
		Description string    `json:"description"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if _, ok := h.ownedChannel(w, r, req.ChannelID); !ok {
		return
	}

	idea := &domain.Idea{
		OwnerID:     h.ownerID(r),
		ChannelID:   req.ChannelID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.IdeaPending,
	}

	if err := h.repository.CreateIdea(idea); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "ideia criada com sucesso", idea)
}

func (h *Handler) GetIdeas(w http.ResponseWriter, r *http.Request) {
	filter := repository.IdeaFilter{}

	if v := r.URL.Query().Get("channelID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.errorResponse(w, r, "ID do canal inválido")
			return
		}
		filter.ChannelID = &id
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.IdeaStatus(v)
		if !status.Valid() {
			h.errorResponse(w, r, "status inválido")
			return
		}
		filter.Status = &status
	}

	ideas, err := h.repository.GetIdeas(h.ownerID(r), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ideias obtidas com sucesso", ideas)
}

func (h *Handler) GetIdea(w http.ResponseWriter, r *http.Request) {
	idea := r.Context().Value(IdeaCtx).(*domain.Idea)
	h.successResponse(w, r, "ideia obtida com sucesso", idea)
}

func (h *Handler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	idea := r.Context().Value(IdeaCtx).(*domain.Idea)

	var req struct {
		ChannelID   *uuid.UUID `json:"channelID"`
		Title       *string    `json:"title" validate:"omitempty,max=200"`
		Description *string    `json:"description"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.ChannelID != nil {
		if _, ok := h.ownedChannel(w, r, *req.ChannelID); !ok {
			return
		}
		idea.ChannelID = *req.ChannelID
	}
	if req.Title != nil {
		if *req.Title == "" {
			h.errorResponse(w, r, "o título não pode ficar vazio")
			return
		}
		idea.Title = *req.Title
	}
	if req.Description != nil {
		idea.Description = *req.Description
	}

	if err := h.repository.UpdateIdea(idea); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "ideia atualizada com sucesso", idea)
}

func (h *Handler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
	idea := r.Context().Value(IdeaCtx).(*domain.Idea)

	if err := h.repository.DeleteIdea(idea.ID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "ideia excluída com sucesso", nil)
}

// ApproveIdea 批准创意，同时在看板第一列创建对应的视频
func (h *Handler) ApproveIdea(w http.ResponseWriter, r *http.Request) {
	idea := r.Context().Value(IdeaCtx).(*domain.Idea)

	if !idea.Status.CanBecome(domain.IdeaApproved) {
		h.errorResponse(w, r, domain.ErrInvalidIdeaTransition.Error())
		return
	}

	video := &domain.Video{
		OwnerID:     idea.OwnerID,
		ChannelID:   idea.ChannelID,
		Title:       idea.Title,
		Description: idea.Description,
		Stage:       domain.StageIdeas,
	}

	if err := h.repository.ApproveIdea(idea, video); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "ideia aprovada e enviada para produção", map[string]any{
		"idea":  idea,
		"video": video,
	})
}

func (h *Handler) RejectIdea(w http.ResponseWriter, r *http.Request) {
	h.changeIdeaStatus(w, r, domain.IdeaRejected, "ideia rejeitada")
}

func (h *Handler) RevertIdea(w http.ResponseWriter, r *http.Request) {
	h.changeIdeaStatus(w, r, domain.IdeaPending, "ideia voltou para pendente")
}

func (h *Handler) changeIdeaStatus(w http.ResponseWriter, r *http.Request, next domain.IdeaStatus, msg string) {
	idea := r.Context().Value(IdeaCtx).(*domain.Idea)

	if !idea.Status.CanBecome(next) {
		h.errorResponse(w, r, domain.ErrInvalidIdeaTransition.Error())
		return
	}

	idea.Status = next
	if err := h.repository.UpdateIdea(idea); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, msg, idea)
}
