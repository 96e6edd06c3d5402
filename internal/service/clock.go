package service

import "time"

// Clock — инжектируемый источник времени. Движок никогда не читает системные часы напрямую,
// все временные решения принимаются относительно переданного now.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
