package select_time

// SelectTimeRequest HTTP request model
type SelectTimeRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
}
