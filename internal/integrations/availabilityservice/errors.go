package availabilityservice

import "errors"

var (
	// ErrNetwork возвращается, когда сервис доступности недоступен по сети
	ErrNetwork = errors.New("availabilityservice client: network error")

	// ErrSpecialistNotFound возвращается, когда у сервиса нет такого специалиста
	ErrSpecialistNotFound = errors.New("availabilityservice client: specialist not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("availabilityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("availabilityservice client: invalid response")
)
