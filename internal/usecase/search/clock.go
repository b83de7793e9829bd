package search

import "time"

// Timer - остановимый таймер
type Timer interface {
	Stop() bool
}

// Clock выдает таймеры для дебаунса; в тестах подменяется
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock - часы на time.AfterFunc
func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
