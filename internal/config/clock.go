package config

import "time"

// Clock источник текущего времени в часовом поясе расписания
type Clock struct {
	loc *time.Location
}

// NewClock создает часы для часового пояса loc
func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

// Now возвращает текущее время в часовом поясе расписания
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location часовой пояс расписания
func (c *Clock) Location() *time.Location {
	return c.loc
}
