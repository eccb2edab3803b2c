package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/darkchannels/studio/backend/internal/utils"
)

var channelConstraints = map[string]string{
	"channels_owner_id_name_key": "já existe um canal com este nome",
}

// channelResponse 在频道数据之外附带展示用的星期名称与发布频率
type channelResponse struct {
	*domain.Channel
	PostingDayNames  []string `json:"postingDayNames"`
	PostingFrequency string   `json:"postingFrequency"`
}

func newChannelResponse(ch *domain.Channel) channelResponse {
	return channelResponse{
		Channel:          ch,
		PostingDayNames:  scheduler.WeekdayNames(ch.PostingDays),
		PostingFrequency: ch.PostingFrequency(),
	}
}

// parsePostingSchedule 只在客户端提交了对应字段时生效，提交空列表视为错误
func parsePostingSchedule(dayNames, times []string) ([]time.Weekday, []string, error) {
	if dayNames != nil && len(dayNames) == 0 {
		return nil, nil, errors.New("selecione pelo menos um dia de postagem")
	}
	if times != nil && len(times) == 0 {
		return nil, nil, errors.New("adicione pelo menos um horário de postagem")
	}

	var days []time.Weekday
	if dayNames != nil {
		parsed, err := utils.ParsePostingDays(dayNames)
		if err != nil {
			return nil, nil, err
		}
		days = parsed
	}

	if times != nil {
		normalized, err := utils.NormalizePostingTimes(times)
		if err != nil {
			return nil, nil, err
		}
		times = normalized
	}

	return days, times, nil
}

func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string   `json:"name" validate:"required,max=100"`
		Link         string   `json:"link" validate:"omitempty,url"`
		Language     string   `json:"language"`
		Niche        string   `json:"niche"`
		SubNiche     string   `json:"subNiche"`
		MicroNiche   string   `json:"microNiche"`
		Color        string   `json:"color" validate:"omitempty,hexcolor"`
		LogoURL      string   `json:"logoURL" validate:"omitempty,url"`
		PostingDays  []string `json:"postingDays" validate:"dive,weekday"`
		PostingTimes []string `json:"postingTimes" validate:"dive,hhmm"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	days, times, err := parsePostingSchedule(req.PostingDays, req.PostingTimes)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if days == nil {
		days = []time.Weekday{}
	}
	if times == nil {
		times = []string{}
	}

	ch := &domain.Channel{
		OwnerID:      h.ownerID(r),
		Name:         req.Name,
		Link:         req.Link,
		Language:     req.Language,
		Niche:        req.Niche,
		SubNiche:     req.SubNiche,
		MicroNiche:   req.MicroNiche,
		Color:        req.Color,
		LogoURL:      req.LogoURL,
		PostingDays:  days,
		PostingTimes: times,
	}

	if err := h.repository.CreateChannel(ch); err != nil {
		h.writeError(w, r, err, channelConstraints)
		return
	}

	h.successResponse(w, r, "canal criado com sucesso", newChannelResponse(ch))
}

func (h *Handler) GetAllChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.repository.GetAllChannels(h.ownerID(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resp := make([]channelResponse, 0, len(channels))
	for _, ch := range channels {
		resp = append(resp, newChannelResponse(ch))
	}

	h.successResponse(w, r, "canais obtidos com sucesso", resp)
}

func (h *Handler) GetChannel(w http.ResponseWriter, r *http.Request) {
	ch := r.Context().Value(ChannelCtx).(*domain.Channel)
	h.successResponse(w, r, "canal obtido com sucesso", newChannelResponse(ch))
}

func (h *Handler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	ch := r.Context().Value(ChannelCtx).(*domain.Channel)

	var req struct {
		Name         *string  `json:"name" validate:"omitempty,max=100"`
		Link         *string  `json:"link" validate:"omitempty,url"`
		Language     *string  `json:"language"`
		Niche        *string  `json:"niche"`
		SubNiche     *string  `json:"subNiche"`
		MicroNiche   *string  `json:"microNiche"`
		Color        *string  `json:"color" validate:"omitempty,hexcolor"`
		LogoURL      *string  `json:"logoURL" validate:"omitempty,url"`
		PostingDays  []string `json:"postingDays" validate:"dive,weekday"`
		PostingTimes []string `json:"postingTimes" validate:"dive,hhmm"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			h.errorResponse(w, r, "o nome do canal não pode ficar vazio")
			return
		}
		ch.Name = *req.Name
	}
	if req.Link != nil {
		ch.Link = *req.Link
	}
	if req.Language != nil {
		ch.Language = *req.Language
	}
	if req.Niche != nil {
		ch.Niche = *req.Niche
	}
	if req.SubNiche != nil {
		ch.SubNiche = *req.SubNiche
	}
	if req.MicroNiche != nil {
		ch.MicroNiche = *req.MicroNiche
	}
	if req.Color != nil {
		ch.Color = *req.Color
	}
	if req.LogoURL != nil {
		ch.LogoURL = *req.LogoURL
	}
	days, times, err := parsePostingSchedule(req.PostingDays, req.PostingTimes)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if days != nil {
		ch.PostingDays = days
	}
	if times != nil {
		ch.PostingTimes = times
	}

	if err := h.repository.UpdateChannel(ch); err != nil {
		h.writeError(w, r, err, channelConstraints)
		return
	}

	h.successResponse(w, r, "canal atualizado com sucesso", newChannelResponse(ch))
}

func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	ch := r.Context().Value(ChannelCtx).(*domain.Channel)

	// 频道下的创意、视频与排期由外键级联删除
	if err := h.repository.DeleteChannel(ch.ID); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "canal excluído com sucesso", nil)
}
