package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
	"github.com/darkchannels/studio/backend/internal/utils"
)

type slotResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Weekday   string `json:"weekday"`
	Display   string `json:"display"`
	Available bool   `json:"available"`
}

func newSlotResponse(slot scheduler.Slot) slotResponse {
	return slotResponse{
		Date:      slot.Date.Format("2006-01-02"),
		Time:      slot.Time,
		Weekday:   scheduler.WeekdayName(slot.Date.Weekday()),
		Display:   scheduler.FormatSlot(slot),
		Available: slot.Available,
	}
}

// dateParam 读取 YYYY-MM-DD 查询参数，缺省时为今天
func (h *Handler) dateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return h.today(), nil
	}
	return utils.ParseDate(value, h.location)
}

// intParam 读取 [0, max] 范围内的整数查询参数
// 0 天表示不搜索，结果与在范围内找不到时段相同
func intParam(r *http.Request, name string, def, max int) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return def, true
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > max {
		return 0, false
	}
	return n, true
}

// nextSlot 在 [from, from+horizon) 内查找频道的第一个空闲时段
func (h *Handler) nextSlot(ch *domain.Channel, from time.Time, horizon int) (scheduler.Slot, bool, error) {
	occupied, err := h.repository.GetOccupiedSlots(ch.ID, from, from.AddDate(0, 0, horizon-1))
	if err != nil {
		return scheduler.Slot{}, false, err
	}

	slot, ok := scheduler.NextAvailable(ch.Schedule(), occupied, from, horizon)
	h.metrics.SlotLookup(ok)
	return slot, ok, nil
}

func (h *Handler) GetNextSlot(w http.ResponseWriter, r *http.Request) {
	ch := r.Context().Value(ChannelCtx).(*domain.Channel)

	from, err := h.dateParam(r, "from")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	horizon, ok := intParam(r, "horizon", h.config.Scheduling.NextSlotHorizonDays, h.config.Scheduling.LongHorizonDays)
	if !ok {
		h.errorResponse(w, r, "o período de busca deve estar entre 0 e "+strconv.Itoa(h.config.Scheduling.LongHorizonDays)+" dias")
		return
	}

	slot, found, err := h.nextSlot(ch, from, horizon)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !found {
		h.successResponse(w, r, domain.ErrNoSlotAvailable.Error(), nil)
		return
	}

	h.successResponse(w, r, "próximo horário disponível encontrado", newSlotResponse(slot))
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ch := r.Context().Value(ChannelCtx).(*domain.Channel)

	start, err := h.dateParam(r, "start")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	days, ok := intParam(r, "days", 7, h.config.Scheduling.LongHorizonDays)
	if !ok {
		h.errorResponse(w, r, "o número de dias deve estar entre 0 e "+strconv.Itoa(h.config.Scheduling.LongHorizonDays))
		return
	}

	occupied, err := h.repository.GetOccupiedSlots(ch.ID, start, start.AddDate(0, 0, days-1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots := scheduler.Availability(ch.Schedule(), start, days, occupied)

	resp := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, newSlotResponse(slot))
	}

	h.successResponse(w, r, "disponibilidade obtida com sucesso", resp)
}
