package scheduler

import (
	"slices"
	"time"
)

const (
	// DefaultHorizonDays 是交互式查询下一个空闲时段时的搜索范围
	DefaultHorizonDays = 30
	// LongHorizonDays 用于长期可用性检查
	LongHorizonDays = 365
)

// PostingSchedule 描述频道每周固定的发布节奏
// Times 的顺序有意义：同一天内排在前面的时段优先
type PostingSchedule struct {
	Days  []time.Weekday `json:"days"`
	Times []string       `json:"times"`
}

// OccupiedSlot 是已经被占用的 (日期, 时段)，只比较年月日
type OccupiedSlot struct {
	Date time.Time `json:"date"`
	Time string    `json:"time"`
}

type Slot struct {
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Available bool      `json:"available"`
}

type slotKey struct {
	year  int
	month time.Month
	day   int
	time  string
}

func keyOf(date time.Time, t string) slotKey {
	y, m, d := date.Date()
	return slotKey{year: y, month: m, day: d, time: t}
}

func occupiedSet(occupied []OccupiedSlot) map[slotKey]struct{} {
	set := make(map[slotKey]struct{}, len(occupied))
	for _, o := range occupied {
		set[keyOf(o.Date, o.Time)] = struct{}{}
	}
	return set
}

// startOfDay 保留 date 的时区，去掉时分秒
func startOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

func (s PostingSchedule) isEmpty() bool {
	return len(s.Days) == 0 || len(s.Times) == 0
}

func (s PostingSchedule) postsOn(day time.Weekday) bool {
	return slices.Contains(s.Days, day)
}

// NextAvailable 从 today（含）开始向后搜索 horizonDays 天，返回第一个空闲时段
// 外层按日期递增，内层按 Times 的存储顺序，而不是按时间先后排序
func NextAvailable(schedule PostingSchedule, occupied []OccupiedSlot, today time.Time, horizonDays int) (Slot, bool) {
	if horizonDays <= 0 || schedule.isEmpty() {
		return Slot{}, false
	}

	taken := occupiedSet(occupied)
	first := startOfDay(today)

	for offset := 0; offset < horizonDays; offset++ {
		date := first.AddDate(0, 0, offset)
		if !schedule.postsOn(date.Weekday()) {
			continue
		}
		for _, t := range schedule.Times {
			if _, ok := taken[keyOf(date, t)]; !ok {
				return Slot{Date: date, Time: t, Available: true}, true
			}
		}
	}

	return Slot{}, false
}

// Availability 枚举从 startDate（含）开始 days 天内所有的发布时段
// 不发布的日期不产生任何条目
func Availability(schedule PostingSchedule, startDate time.Time, days int, occupied []OccupiedSlot) []Slot {
	slots := []Slot{}
	if days <= 0 || schedule.isEmpty() {
		return slots
	}

	taken := occupiedSet(occupied)
	first := startOfDay(startDate)

	for offset := 0; offset < days; offset++ {
		date := first.AddDate(0, 0, offset)
		if !schedule.postsOn(date.Weekday()) {
			continue
		}
		for _, t := range schedule.Times {
			_, isTaken := taken[keyOf(date, t)]
			slots = append(slots, Slot{Date: date, Time: t, Available: !isTaken})
		}
	}

	return slots
}

// WeekAvailability 是 7 天窗口的 Availability
func WeekAvailability(schedule PostingSchedule, startDate time.Time, occupied []OccupiedSlot) []Slot {
	return Availability(schedule, startDate, 7, occupied)
}

// Fits 判断 (date, t) 是否符合频道的发布节奏
func Fits(schedule PostingSchedule, date time.Time, t string) bool {
	return schedule.postsOn(date.Weekday()) && slices.Contains(schedule.Times, t)
}

// IsOccupied 判断 (date, t) 是否已经被占用
func IsOccupied(occupied []OccupiedSlot, date time.Time, t string) bool {
	want := keyOf(date, t)
	for _, o := range occupied {
		if keyOf(o.Date, o.Time) == want {
			return true
		}
	}
	return false
}
