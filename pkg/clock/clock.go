package clock

import "time"

// Real реальный провайдер времени для production
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed всегда возвращает одно и то же время, для тестов
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
