package scheduler

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var displayNames = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// 客户端历史上出现过的各种写法，统一去掉重音并转为小写后再匹配
var weekdayAliases = map[string]time.Weekday{
	"domingo":       time.Sunday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"terca":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sabado":        time.Saturday,
	"sunday":        time.Sunday,
	"monday":        time.Monday,
	"tuesday":       time.Tuesday,
	"wednesday":     time.Wednesday,
	"thursday":      time.Thursday,
	"friday":        time.Friday,
	"saturday":      time.Saturday,
}

// Fold 去掉重音符号并转为小写，例如 "Terça" -> "terca"
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ParseWeekday 把边界上的星期名称转换为 time.Weekday
// 支持葡语短/长名称、英语名称（忽略大小写与重音）以及数字 0-6
func ParseWeekday(name string) (time.Weekday, bool) {
	key := Fold(name)
	if day, ok := weekdayAliases[key]; ok {
		return day, true
	}

	n, err := strconv.Atoi(key)
	if err != nil || n < 0 || n > 6 {
		return 0, false
	}
	return time.Weekday(n), true
}

// ParseWeekdays 返回识别出的日期（去重，保持首次出现的顺序）以及无法识别的名称
func ParseWeekdays(names []string) ([]time.Weekday, []string) {
	days := make([]time.Weekday, 0, len(names))
	rejected := []string{}
	seen := map[time.Weekday]bool{}

	for _, name := range names {
		day, ok := ParseWeekday(name)
		if !ok {
			rejected = append(rejected, name)
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}

	return days, rejected
}

func WeekdayName(day time.Weekday) string {
	if day < time.Sunday || day > time.Saturday {
		return ""
	}
	return displayNames[day]
}

func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, WeekdayName(day))
	}
	return names
}
