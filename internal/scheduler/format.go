package scheduler

import (
	"fmt"
	"time"
)

// FormatSlot 生成展示给用户的文本，格式固定为 "<星期>, <DD>/<MM> às <HH:MM>"
func FormatSlot(slot Slot) string {
	return fmt.Sprintf("%s, %02d/%02d às %s", WeekdayName(slot.Date.Weekday()), slot.Date.Day(), int(slot.Date.Month()), slot.Time)
}

// ParseTimeOfDay 校验 24 小时制的 HH:MM
func ParseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("horário inválido: %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
