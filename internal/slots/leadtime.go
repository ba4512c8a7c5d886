package slots

import (
	"time"
)

// LeadTimeCutoff минимальное допустимое начало слота на сегодня в минутах от начала суток:
// now + leadTime, округлённое вверх до границы сетки. Может быть >= 24*60, тогда на сегодня
// слотов нет.
//
// Единственная реализация правила: ей пользуются и расчёт доступности, и проверка при записи.
func LeadTimeCutoff(now time.Time, rules Rules) int {
	step := rules.step() * 60

	seconds := now.Hour()*3600 + now.Minute()*60 + now.Second() + rules.LeadTimeMinutes*60
	if now.Nanosecond() > 0 {
		seconds++
	}

	rounded := (seconds + step - 1) / step * step
	return rounded / 60
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что date раньше сегодняшнего дня (по now)
func IsDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// SatisfiesLeadTime проверяет правило опережения для старта startMinutes на дату date.
// Для дат, отличных от сегодняшней, правило не действует.
func SatisfiesLeadTime(date time.Time, startMinutes int, now time.Time, rules Rules) bool {
	if !IsSameDay(date, now) {
		return true
	}
	return startMinutes >= LeadTimeCutoff(now, rules)
}
