package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// Weekday день недели в ISO нумерации (понедельник = 1, воскресенье = 7)
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

// AllWeekdays дни недели по порядку, начиная с понедельника
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf переводит time.Weekday в ISO день недели (воскресенье = 7)
func WeekdayOf(t time.Time) Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// ParseWeekday разбирает имя дня недели ("monday", "Mon")
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for wd, name := range weekdayNames {
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// IsValid returns true for Monday..Sunday
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// String возвращает имя дня недели
func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("weekday(%d)", int(w))
}

// BusinessHourRecord часы работы для (год, месяц, неделя месяца, день недели).
// OpenTime/CloseTime хранятся как есть; нормализация к HH:MM происходит при чтении.
type BusinessHourRecord struct {
	ID          int64
	Year        int
	Month       int
	WeekOfMonth int
	DayOfWeek   Weekday
	IsClosed    bool
	OpenTime    *string
	CloseTime   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OperatingHours результат разрешения часов работы на дату
type OperatingHours struct {
	Date         time.Time
	IsClosed     bool
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	ClosedReason string
}

// Closed создает результат "закрыто" с причиной
func Closed(date time.Time, reason string) OperatingHours {
	return OperatingHours{Date: date, IsClosed: true, ClosedReason: reason}
}

// Причины, по которым день считается закрытым
const (
	ClosedReasonNoRecord      = "no business hours configured"
	ClosedReasonMarkedClosed  = "closed"
	ClosedReasonMissingTime   = "business hours are incomplete"
	ClosedReasonMisconfigured = "close time is not after open time"
)

// DaySchedule строка расписания месяца для отображения календаря
type DaySchedule struct {
	Date      time.Time
	IsClosed  bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// WeeklyTemplateUpdate административное изменение записи часов работы
type WeeklyTemplateUpdate struct {
	Year        int
	Month       int
	WeekOfMonth int
	DayOfWeek   Weekday
	IsClosed    bool
	OpenTime    *types.TimeString
	CloseTime   *types.TimeString
}

// DayTemplate часы работы одного дня недели по умолчанию, используются при заполнении месяца
type DayTemplate struct {
	IsClosed  bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeekTemplate шаблон недели по умолчанию; отсутствующий день считается выходным
type WeekTemplate map[Weekday]DayTemplate

// Day возвращает шаблон дня; для отсутствующего дня возвращает выходной
func (w WeekTemplate) Day(wd Weekday) DayTemplate {
	if tpl, ok := w[wd]; ok {
		return tpl
	}
	return DayTemplate{IsClosed: true}
}
