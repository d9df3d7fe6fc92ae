package create_session

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	SpecialistID int64 `json:"specialistId" validate:"required,gt=0"`
}
