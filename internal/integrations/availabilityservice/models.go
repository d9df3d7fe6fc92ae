package availabilityservice

// DaySlots запись доступности на один день
type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// ErrorResponse модель ошибки от сервиса доступности
type ErrorResponse struct {
	Message string `json:"message"`
}
