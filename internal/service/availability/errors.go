package availability

import "errors"

var (
	// ErrInvalidSpecialistID возвращается, когда ID специалиста не положительный
	ErrInvalidSpecialistID = errors.New("specialist id must be positive")

	// ErrFetchFailure возвращается при любой ошибке загрузки доступности
	// (сеть, не-2xx ответ, некорректные данные). Автоматического повтора нет
	ErrFetchFailure = errors.New("availability fetch failed")
)
