package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/darkchannels/studio/backend/internal/domain"
	"github.com/darkchannels/studio/backend/internal/scheduler"
)

// ParsePostingDays 把客户端提交的星期名称转换为 time.Weekday，无法识别的名称视为错误
func ParsePostingDays(names []string) ([]time.Weekday, error) {
	days, rejected := scheduler.ParseWeekdays(names)
	if len(rejected) > 0 {
		return nil, fmt.Errorf("dia de postagem desconhecido: %s", strings.Join(rejected, ", "))
	}
	return days, nil
}

// NormalizePostingTimes 校验 HH:MM 格式并去掉重复项，保留第一次出现的位置
func NormalizePostingTimes(times []string) ([]string, error) {
	out := make([]string, 0, len(times))
	seen := map[string]bool{}

	for i, t := range times {
		t = strings.TrimSpace(t)
		if _, err := scheduler.ParseTimeOfDay(t); err != nil {
			return nil, fmt.Errorf("o horário %d (%q) deve estar no formato HH:MM", i+1, t)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}

	return out, nil
}

// ValidateChannelSchedule 频道必须至少有一个发布日和一个发布时段
func ValidateChannelSchedule(ch *domain.Channel) error {
	if len(ch.PostingDays) == 0 {
		return errors.New("selecione pelo menos um dia de postagem")
	}
	if len(ch.PostingTimes) == 0 {
		return errors.New("adicione pelo menos um horário de postagem")
	}
	for _, day := range ch.PostingDays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("dia de postagem inválido: %d", day)
		}
	}
	return nil
}

// ValidateRequestedSlot 检查手动指定的时段：不能早于今天，并且必须符合频道的发布节奏
func ValidateRequestedSlot(ch *domain.Channel, date time.Time, t string, today time.Time) error {
	if _, err := scheduler.ParseTimeOfDay(t); err != nil {
		return err
	}

	ty, tm, td := today.Date()
	startOfToday := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := date.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	if day.Before(startOfToday) {
		return errors.New("não é possível agendar em uma data passada")
	}

	if !scheduler.Fits(ch.Schedule(), date, t) {
		return domain.ErrSlotOutsideSchedule
	}

	return nil
}

// ParseDate 解析 YYYY-MM-DD，结果位于 loc 时区的零点
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q, use o formato AAAA-MM-DD", s)
	}
	return d, nil
}
