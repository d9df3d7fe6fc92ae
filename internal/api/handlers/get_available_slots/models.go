package get_available_slots

import "github.com/m04kA/SMC-SlotPicker/internal/domain"

// DaySlotsResponse HTTP response model: слоты одного дня
type DaySlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// FromSnapshot конвертирует снимок в HTTP response в порядке поставщика
func FromSnapshot(snapshot *domain.Snapshot) []DaySlotsResponse {
	records := snapshot.Records()
	resp := make([]DaySlotsResponse, len(records))
	for i, rec := range records {
		resp[i] = DaySlotsResponse{
			Date:  rec.Date,
			Slots: rec.Slots,
		}
	}
	return resp
}
