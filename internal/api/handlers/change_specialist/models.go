package change_specialist

// ChangeSpecialistRequest HTTP request model
type ChangeSpecialistRequest struct {
	SpecialistID int64 `json:"specialistId" validate:"required,gt=0"`
}
