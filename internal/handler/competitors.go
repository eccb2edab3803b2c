package handler

import (
	"net/http"

	"github.com/darkchannels/studio/backend/internal/domain"
)

func (h *Handler) CreateCompetitor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required,max=100"`
		Address  string `json:"address" validate:"required,url"`
		Niche    string `json:"niche"`
		Details  string `json:"details"`
		Note     string `json:"note"`
		Favorite bool   `json:"favorite"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	c := &domain.CompetitorChannel{
		OwnerID:  h.ownerID(r),
		Name:     req.Name,
		Address:  req.Address,
		Niche:    req.Niche,
		Details:  req.Details,
		Note:     req.Note,
		Favorite: req.Favorite,
	}

	if err := h.repository.CreateCompetitor(c); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "canal concorrente adicionado", c)
}

func (h *Handler) GetAllCompetitors(w http.ResponseWriter, r *http.Request) {
	competitors, err := h.repository.GetAllCompetitors(h.ownerID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "canais concorrentes obtidos com sucesso", competitors)
}

func (h *Handler) GetCompetitor(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CompetitorChannelCtx).(*domain.CompetitorChannel)
	h.successResponse(w, r, "canal concorrente obtido com sucesso", c)
}

func (h *Handler) UpdateCompetitor(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CompetitorChannelCtx).(*domain.CompetitorChannel)

	var req struct {
		Name    *string `json:"name" validate:"omitempty,max=100"`
		Address *string `json:"address" validate:"omitempty,url"`
		Niche   *string `json:"niche"`
		Details *string `json:"details"`
		Note    *string `json:"note"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Niche != nil {
		c.Niche = *req.Niche
	}
	if req.Details != nil {
		c.Details = *req.Details
	}
	if req.Note != nil {
		c.Note = *req.Note
	}

	if err := h.repository.UpdateCompetitor(c); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "canal concorrente atualizado", c)
}

func (h *Handler) DeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CompetitorChannelCtx).(*domain.CompetitorChannel)

	if err := h.repository.DeleteCompetitor(c.ID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "canal concorrente removido", nil)
}

func (h *Handler) ToggleCompetitorFavorite(w http.ResponseWriter, r *http.Request) {
	c := r.Context().Value(CompetitorChannelCtx).(*domain.CompetitorChannel)

	c.Favorite = !c.Favorite
	if err := h.repository.UpdateCompetitor(c); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	msg := "canal removido dos favoritos"
	if c.Favorite {
		msg = "canal adicionado aos favoritos"
	}
	h.successResponse(w, r, msg, c)
}
