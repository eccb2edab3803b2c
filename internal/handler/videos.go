package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/google/uuid"
)

// ownedMember 校验被分配的成员属于当前负责人
func (h *Handler) ownedMember(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*domain.Member, bool) {
	m, err := h.repository.GetMemberByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "membro não encontrado")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	if m.OwnerID != h.ownerID(r) {
		h.errorResponse(w, r, "membro não encontrado")
		return nil, false
	}

	return m, true
}

func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID      uuid.UUID  `json:"channelID" validate:"required"`
		Title          string     `json:"title" validate:"required,max=200"`
		Description    string     `json:"description"`
		Stage          string     `json:"stage" validate:"omitempty,oneof=ideias roteiro audio edicao pronto"`
		AssigneeID     *uuid.UUID `json:"assigneeID"`
		ThumbnailReady bool       `json:"thumbnailReady"`
		DriveLink      string     `json:"driveLink" validate:"omitempty,url"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ch, ok := h.ownedChannel(w, r, req.ChannelID)
	if !ok {
		return
	}

	if req.AssigneeID != nil {
		if _, ok := h.ownedMember(w, r, *req.AssigneeID); !ok {
			return
		}
	}

	stage := domain.StageIdeas
	if req.Stage != "" {
		stage = domain.VideoStage(req.Stage)
	}

	v := &domain.Video{
		OwnerID:        h.ownerID(r),
		ChannelID:      ch.ID,
		ChannelName:    ch.Name,
		Title:          req.Title,
		Description:    req.Description,
		Stage:          stage,
		AssigneeID:     req.AssigneeID,
		ThumbnailReady: req.ThumbnailReady,
		DriveLink:      req.DriveLink,
	}

	if err := h.repository.CreateVideo(v); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo criado com sucesso", v)
}

func (h *Handler) videoFilter(r *http.Request) (repository.VideoFilter, error) {
	filter := repository.VideoFilter{}
	q := r.URL.Query()

	if v := q.Get("channelID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("ID do canal inválido")
		}
		filter.ChannelID = &id
	}
	if v := q.Get("stage"); v != "" {
		stage := domain.VideoStage(v)
		if !stage.Valid() {
			return filter, errors.New("etapa inválida")
		}
		filter.Stage = &stage
	}
	if v := q.Get("assigneeID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("ID do membro inválido")
		}
		filter.AssigneeID = &id
	}

	return filter, nil
}

func (h *Handler) GetVideos(w http.ResponseWriter, r *http.Request) {
	filter, err := h.videoFilter(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	videos, err := h.repository.GetVideos(h.ownerID(r), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vídeos obtidos com sucesso", videos)
}

type boardColumn struct {
	Stage  domain.VideoStage `json:"stage"`
	Title  string            `json:"title"`
	Videos []*domain.Video   `json:"videos"`
}

// GetBoard 按生产阶段分组返回看板
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	filter, err := h.videoFilter(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	filter.Stage = nil

	videos, err := h.repository.GetVideos(h.ownerID(r), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	columns := make([]boardColumn, 0, len(domain.Stages))
	index := map[domain.VideoStage]int{}
	for i, stage := range domain.Stages {
		columns = append(columns, boardColumn{Stage: stage, Title: stage.Title(), Videos: []*domain.Video{}})
		index[stage] = i
	}
	for _, v := range videos {
		if i, ok := index[v.Stage]; ok {
			columns[i].Videos = append(columns[i].Videos, v)
		}
	}

	h.successResponse(w, r, "quadro obtido com sucesso", columns)
}

func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)
	h.successResponse(w, r, "vídeo obtido com sucesso", v)
}

func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	var req struct {
		ChannelID      *uuid.UUID `json:"channelID"`
		Title          *string    `json:"title" validate:"omitempty,max=200"`
		Description    *string    `json:"description"`
		AssigneeID     *uuid.UUID `json:"assigneeID"`
		ClearAssignee  bool       `json:"clearAssignee"`
		ThumbnailReady *bool      `json:"thumbnailReady"`
		DriveLink      *string    `json:"driveLink" validate:"omitempty,url"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.ChannelID != nil {
		ch, ok := h.ownedChannel(w, r, *req.ChannelID)
		if !ok {
			return
		}
		v.ChannelID = ch.ID
		v.ChannelName = ch.Name
	}
	if req.Title != nil {
		if *req.Title == "" {
			h.errorResponse(w, r, "o título não pode ficar vazio")
			return
		}
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	switch {
	case req.ClearAssignee:
		v.AssigneeID = nil
		v.AssigneeName = ""
	case req.AssigneeID != nil:
		m, ok := h.ownedMember(w, r, *req.AssigneeID)
		if !ok {
			return
		}
		v.AssigneeID = &m.ID
		v.AssigneeName = m.FullName
	}
	if req.ThumbnailReady != nil {
		v.ThumbnailReady = *req.ThumbnailReady
	}
	if req.DriveLink != nil {
		v.DriveLink = *req.DriveLink
	}

	if err := h.repository.UpdateVideo(v); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo atualizado com sucesso", v)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	if err := h.repository.DeleteVideo(v.ID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo excluído com sucesso", nil)
}

func (h *Handler) MoveVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	var req struct {
		Stage string `json:"stage" validate:"required,oneof=ideias roteiro audio edicao pronto"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	next := domain.VideoStage(req.Stage)
	if !v.Stage.CanMoveTo(next) {
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

// SendVideoBackToIdeas 把视频撤回创意库，作为待定创意重新评估
func (h *Handler) SendVideoBackToIdeas(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	idea := &domain.Idea{
		OwnerID:     v.OwnerID,
		ChannelID:   v.ChannelID,
		Title:       v.Title,
		Description: v.Description,
		Status:      domain.IdeaPending,
	}

	if err := h.repository.SendVideoBackToIdeas(v, idea); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo devolvido para o banco de ideias", idea)
}
