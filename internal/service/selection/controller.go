package selection

import (
	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

// Controller конечный автомат выбора даты и времени для одного специалиста.
// Владеет selectedDate, selectedDaySlots, errorMessage и loading.
//
// Controller не потокобезопасен: все вызовы должны идти из одного потока управления
// (сессия сериализует их мьютексом)
type Controller struct {
	listener Listener

	snapshot     *domain.Snapshot
	index        *domain.DateIndex
	selectedDate *domain.CalendarDate
	daySlots     []string
	errorMessage string
	loading      bool
}

// NewController создает контроллер в состоянии Idle. listener может быть nil
func NewController(listener Listener) *Controller {
	if listener == nil {
		listener = ListenerFuncs{}
	}
	return &Controller{
		listener: listener,
		index:    domain.NewDateIndex(nil),
		daySlots: []string{},
	}
}

// SelectDate выбирает дату d, пересчитывает слоты дня и сообщает дату вызывающей стороне.
// Отсутствие записи в снимке это обычное состояние DateChosenNoSlots, а не ошибка
func (c *Controller) SelectDate(d domain.CalendarDate) {
	selected := d
	c.selectedDate = &selected
	c.resolve()
	c.listener.OnDateSelect(selected.String())
}

// ClearDate сбрасывает выбор даты (Idle). Событие выбора даты не отправляется
func (c *Controller) ClearDate() {
	c.selectedDate = nil
	c.daySlots = []string{}
	c.errorMessage = ""
}

// SelectTime сообщает выбранное время. Состояние не меняется, принадлежность t
// к слотам дня не проверяется: выбрать можно только показанный слот
func (c *Controller) SelectTime(t string) {
	c.listener.OnTimeSelect(t)
}

// BeginLoading отмечает начало загрузки. Старый снимок остается доступным для выбора
func (c *Controller) BeginLoading() {
	c.loading = true
}

// ReplaceSnapshot применяет новый снимок и завершает загрузку.
// Если дата выбрана, она перепроверяется по новому снимку
func (c *Controller) ReplaceSnapshot(snapshot *domain.Snapshot) {
	c.snapshot = snapshot
	c.index = domain.NewDateIndex(snapshot)
	c.loading = false

	if c.selectedDate == nil {
		// Сообщение о неудачной загрузке относится к прошлому запросу
		c.errorMessage = ""
		return
	}

	c.resolve()
	c.listener.OnDateSelect(c.selectedDate.String())
}

// FailLoading завершает загрузку с ошибкой: снимок сбрасывается, устаревшая
// доступность не показывается
func (c *Controller) FailLoading() {
	c.snapshot = nil
	c.index = domain.NewDateIndex(nil)
	c.loading = false
	c.daySlots = []string{}
	c.errorMessage = domain.MsgFailedToLoadSlots
}

// IsEligible можно ли выбрать дату в текущем снимке
func (c *Controller) IsEligible(d domain.CalendarDate) bool {
	return c.index.Contains(d)
}

// EligibleDates даты текущего снимка в порядке поставщика
func (c *Controller) EligibleDates() []domain.CalendarDate {
	return c.index.Dates()
}

// Snapshot текущий снимок (nil, если не загружен или загрузка не удалась)
func (c *Controller) Snapshot() *domain.Snapshot {
	return c.snapshot
}

// State возвращает копию текущего состояния
func (c *Controller) State() domain.SelectionState {
	state := domain.SelectionState{
		SelectedDaySlots: append([]string{}, c.daySlots...),
		ErrorMessage:     c.errorMessage,
		Loading:          c.loading,
	}
	if c.selectedDate != nil {
		d := *c.selectedDate
		state.SelectedDate = &d
	}
	return state
}

// resolve ищет выбранную дату в снимке; при дублях дат выигрывает первая запись
func (c *Controller) resolve() {
	times, ok := c.snapshot.Lookup(*c.selectedDate)
	if ok && len(times) > 0 {
		c.daySlots = times
		c.errorMessage = ""
		return
	}

	c.daySlots = []string{}
	c.errorMessage = domain.MsgNoSlotsForDate
}
