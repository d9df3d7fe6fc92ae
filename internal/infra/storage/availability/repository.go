package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/pkg/psqlbuilder"
)

const tableName = "specialist_availability"

// slotRow строка таблицы specialist_availability
type slotRow struct {
	Date string
	Time string
}

// Repository репозиторий доступности специалистов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAvailableSlots возвращает доступность специалиста по дням.
// Дни идут по возрастанию даты, слоты внутри дня в порядке position
func (r *Repository) GetAvailableSlots(ctx context.Context, specialistID int64) ([]domain.AvailabilityRecord, error) {
	query, args, err := buildSelectQuery(specialistID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]slotRow, 0)
	for rows.Next() {
		var row slotRow
		if err := rows.Scan(&row.Date, &row.Time); err != nil {
			return nil, fmt.Errorf("%w: GetAvailableSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - rows error: %v", ErrScanRow, err)
	}

	return groupByDate(slots), nil
}

func buildSelectQuery(specialistID int64) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"to_char(slot_date, 'YYYY-MM-DD') AS slot_date",
		"to_char(slot_time, 'HH24:MI') AS slot_time",
	).
		From(tableName).
		Where(squirrel.Eq{"specialist_id": specialistID}).
		OrderBy("slot_date", "position", "slot_time").
		ToSql()
}

// groupByDate собирает отсортированные строки в записи по дням
func groupByDate(rows []slotRow) []domain.AvailabilityRecord {
	records := make([]domain.AvailabilityRecord, 0)
	for _, row := range rows {
		last := len(records) - 1
		if last >= 0 && records[last].Date == row.Date {
			records[last].Slots = append(records[last].Slots, row.Time)
			continue
		}
		records = append(records, domain.AvailabilityRecord{Date: row.Date, Slots: []string{row.Time}})
	}
	return records
}
