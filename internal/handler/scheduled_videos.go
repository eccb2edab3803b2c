package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/repository"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/darkchannels/studio/backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const slotConstraint = "scheduled_videos_slot_key"

// slotInputError 表示客户端提交的日期或时间有误
type slotInputError struct {
	err error
}

func (e *slotInputError) Error() string { return e.err.Error() }

func (e *slotInputError) Unwrap() error { return e.err }

func (h *Handler) GetScheduledVideos(w http.ResponseWriter, r *http.Request) {
	filter := repository.ScheduledVideoFilter{}
	q := r.URL.Query()

	if v := q.Get("channelID"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.errorResponse(w, r, "ID do canal inválido")
			return
		}
		filter.ChannelID = &id
	}
	if v := q.Get("from"); v != "" {
		from, err := utils.ParseDate(v, h.location)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := utils.ParseDate(v, h.location)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		h.errorResponse(w, r, "a data final deve ser posterior à data inicial")
		return
	}
	if v := q.Get("status"); v != "" {
		status := domain.ScheduledStatus(v)
		if !status.Valid() {
			h.errorResponse(w, r, "status inválido")
			return
		}
		filter.Status = &status
	}

	videos, err := h.repository.GetScheduledVideos(h.ownerID(r), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "agendamentos obtidos com sucesso", videos)
}

func (h *Handler) GetScheduledVideo(w http.ResponseWriter, r *http.Request) {
	sv := r.Context().Value(ScheduledVideoCtx).(*domain.ScheduledVideo)
	h.successResponse(w, r, "agendamento obtido com sucesso", sv)
}

// pickSlot 决定要预订的时段：未指定日期时自动选择下一个空闲时段，否则校验指定时段
func (h *Handler) pickSlot(ch *domain.Channel, date, t *string) (scheduler.Slot, error) {
	today := h.today()

	if date == nil {
		slot, ok, err := h.nextSlot(ch, today, h.config.Scheduling.NextSlotHorizonDays)
		if err != nil {
			return scheduler.Slot{}, err
		}
		if !ok {
			return scheduler.Slot{}, domain.ErrNoSlotAvailable
		}
		return slot, nil
	}

	if t == nil {
		return scheduler.Slot{}, &slotInputError{errors.New("informe o horário junto com a data")}
	}

	day, err := utils.ParseDate(*date, h.location)
	if err != nil {
		return scheduler.Slot{}, &slotInputError{err}
	}
	if err := utils.ValidateRequestedSlot(ch, day, *t, today); err != nil {
		return scheduler.Slot{}, &slotInputError{err}
	}

	occupied, err := h.repository.GetOccupiedSlots(ch.ID, day, day)
	if err != nil {
		return scheduler.Slot{}, err
	}
	if scheduler.IsOccupied(occupied, day, *t) {
		return scheduler.Slot{}, domain.ErrSlotOccupied
	}

	return scheduler.Slot{Date: day, Time: *t, Available: true}, nil
}

// ScheduleVideo 为就绪的视频预订发布时段
// redis 锁避免并发请求同时预订同一时段，最终由数据库唯一约束兜底
func (h *Handler) ScheduleVideo(w http.ResponseWriter, r *http.Request) {
	v := r.Context().Value(VideoCtx).(*domain.Video)

	var req struct {
		Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Time        *string `json:"time" validate:"omitempty,hhmm"`
		YoutubeLink string  `json:"youtubeLink" validate:"omitempty,url"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if !v.ReadyToSchedule() {
		h.metrics.Booking("not_ready")
		h.errorResponse(w, r, domain.ErrVideoNotReady.Error())
		return
	}

	ch, ok := h.ownedChannel(w, r, v.ChannelID)
	if !ok {
		return
	}
	if err := utils.ValidateChannelSchedule(ch); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slot, err := h.pickSlot(ch, req.Date, req.Time)
	if err != nil {
		var inputErr *slotInputError
		switch {
		case errors.Is(err, domain.ErrNoSlotAvailable):
			h.metrics.Booking("no_slot")
			h.errorResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrSlotOccupied):
			h.metrics.Booking("occupied")
			h.errorResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrSlotOutsideSchedule):
			h.metrics.Booking("outside_schedule")
			h.errorResponse(w, r, err.Error())
		case errors.As(err, &inputErr):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	ctx, cancel := h.redisContext()
	defer cancel()

	release, acquired, err := h.slotLocker.Acquire(ctx, ch.ID, slot.Date, slot.Time)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !acquired {
		h.metrics.Booking("locked")
		h.errorResponse(w, r, domain.ErrSlotLocked.Error())
		return
	}
	defer func() {
		releaseCtx, cancel := h.redisContext()
		defer cancel()
		if err := release(releaseCtx); err != nil {
			slog.Warn("falha ao liberar a trava do horário", "channel", ch.ID, "date", slot.Date.Format(time.DateOnly), "time", slot.Time, "error", err)
		}
	}()

	sv := &domain.ScheduledVideo{
		OwnerID:       v.OwnerID,
		ChannelID:     ch.ID,
		ChannelName:   ch.Name,
		ChannelColor:  ch.Color,
		Title:         v.Title,
		Description:   v.Description,
		ScheduledDate: slot.Date,
		ScheduledTime: slot.Time,
		YoutubeLink:   req.YoutubeLink,
		Status:        domain.ScheduledPending,
	}

	if err := h.repository.ScheduleVideo(v, sv); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == slotConstraint {
			h.metrics.Booking("occupied")
		}
		h.writeError(w, r, err, map[string]string{slotConstraint: domain.ErrSlotOccupied.Error()})
		return
	}

	h.metrics.Booking("ok")
	h.successResponse(w, r, "vídeo agendado para "+scheduler.FormatSlot(slot), sv)
}

func (h *Handler) PublishScheduledVideo(w http.ResponseWriter, r *http.Request) {
	sv := r.Context().Value(ScheduledVideoCtx).(*domain.ScheduledVideo)

	var req struct {
		YoutubeLink string `json:"youtubeLink" validate:"required,url"`
	}
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if sv.Status == domain.ScheduledPublished {
		h.errorResponse(w, r, "o vídeo já foi publicado")
		return
	}

	sv.YoutubeLink = req.YoutubeLink
	sv.Status = domain.ScheduledPublished
	if err := h.repository.UpdateScheduledVideo(sv); err != nil {
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "vídeo marcado como publicado", sv)
}

// UnscheduleVideo 取消排期，视频回到看板的就绪列
func (h *Handler) UnscheduleVideo(w http.ResponseWriter, r *http.Request) {
	sv := r.Context().Value(ScheduledVideoCtx).(*domain.ScheduledVideo)

	if sv.Status == domain.ScheduledPublished {
		h.errorResponse(w, r, "não é possível cancelar um vídeo já publicado")
		return
	}

	v := &domain.Video{
		OwnerID:        sv.OwnerID,
		ChannelID:      sv.ChannelID,
		ChannelName:    sv.ChannelName,
		Title:          sv.Title,
		Description:    sv.Description,
		Stage:          domain.StageReady,
		ThumbnailReady: true,
	}

	if err := h.repository.UnscheduleVideo(sv, v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.errorResponse(w, r, "o agendamento foi alterado por outra pessoa, tente novamente")
			return
		}
		h.writeError(w, r, err, nil)
		return
	}

	h.successResponse(w, r, "agendamento cancelado, o vídeo voltou para Pronto para Agendar", v)
}
