package select_date

// SelectDateRequest HTTP request model.
// null или отсутствующая дата сбрасывает выбор
type SelectDateRequest struct {
	Date *string `json:"date"`
}
