package check_date_eligibility

// EligibilityResponse HTTP response model
type EligibilityResponse struct {
	Date     string `json:"date"`
	Eligible bool   `json:"eligible"`
}
