package domain

import "time"

// DateOnly возвращает календарную дату t (полночь UTC).
// Год, месяц и день берутся в собственной локации t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate форматирует календарную дату в YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
