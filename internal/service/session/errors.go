package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или уже вытеснена
	ErrSessionNotFound = errors.New("selection session not found")

	// ErrSessionClosed возвращается при обращении к закрытой сессии
	ErrSessionClosed = errors.New("selection session is closed")

	// ErrInvalidSpecialistID возвращается, когда ID специалиста не положительный
	ErrInvalidSpecialistID = errors.New("specialist id must be positive")

	// ErrNoSpecialist возвращается при обновлении сессии без специалиста
	ErrNoSpecialist = errors.New("session has no specialist")

	// ErrTooManySessions возвращается при превышении лимита открытых сессий
	ErrTooManySessions = errors.New("too many open selection sessions")
)
