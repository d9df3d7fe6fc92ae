package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

type recorder struct {
	dates []string
	times []string
}

func (r *recorder) OnDateSelect(isoDate string) { r.dates = append(r.dates, isoDate) }
func (r *recorder) OnTimeSelect(t string)       { r.times = append(r.times, t) }

func mustDate(t *testing.T, s string) domain.CalendarDate {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func snapshotOf(t *testing.T, days map[string][]string, order ...string) *domain.Snapshot {
	t.Helper()
	entries := make([]domain.DaySlots, 0, len(order))
	for _, d := range order {
		entries = append(entries, domain.DaySlots{Date: mustDate(t, d), Times: days[d]})
	}
	return domain.NewSnapshot(5, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), entries)
}

func scenarioSnapshot(t *testing.T) *domain.Snapshot {
	return snapshotOf(t, map[string][]string{"2024-06-10": {"09:00", "10:00"}}, "2024-06-10")
}

func TestController_InitialState(t *testing.T) {
	c := NewController(nil)
	state := c.State()

	assert.Nil(t, state.SelectedDate)
	assert.Equal(t, []string{}, state.SelectedDaySlots)
	assert.Empty(t, state.ErrorMessage)
	assert.False(t, state.Loading)
	assert.Equal(t, domain.PhaseIdle, state.Phase())
}

func TestController_SelectDate_WithSlots(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	c.ReplaceSnapshot(scenarioSnapshot(t))

	c.SelectDate(mustDate(t, "2024-06-10"))

	state := c.State()
	assert.Equal(t, domain.PhaseDateChosenWithSlots, state.Phase())
	assert.Equal(t, []string{"09:00", "10:00"}, state.SelectedDaySlots)
	assert.Empty(t, state.ErrorMessage)
	assert.Equal(t, []string{"2024-06-10"}, rec.dates)
	assert.Equal(t, domain.ViewSlots, state.View())
}

func TestController_SelectDate_NoSlots(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	c.ReplaceSnapshot(scenarioSnapshot(t))

	c.SelectDate(mustDate(t, "2024-06-11"))

	state := c.State()
	assert.Equal(t, domain.PhaseDateChosenNoSlots, state.Phase())
	assert.Equal(t, []string{}, state.SelectedDaySlots)
	assert.Equal(t, domain.MsgNoSlotsForDate, state.ErrorMessage)
	assert.Equal(t, []string{"2024-06-11"}, rec.dates)
	assert.Equal(t, domain.ViewMessage, state.View())
}

func TestController_ClearDate(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.SelectDate(mustDate(t, "2024-06-11"))

	c.ClearDate()

	state := c.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase())
	assert.Nil(t, state.SelectedDate)
	assert.Equal(t, []string{}, state.SelectedDaySlots)
	assert.Empty(t, state.ErrorMessage)
	// Событие только от первого выбора, сброс его не отправляет
	assert.Equal(t, []string{"2024-06-11"}, rec.dates)
}

func TestController_SelectDate_Idempotent(t *testing.T) {
	for _, picked := range []string{"2024-06-10", "2024-06-11"} {
		t.Run(picked, func(t *testing.T) {
			once := NewController(nil)
			once.ReplaceSnapshot(scenarioSnapshot(t))
			once.SelectDate(mustDate(t, picked))

			twice := NewController(nil)
			twice.ReplaceSnapshot(scenarioSnapshot(t))
			twice.SelectDate(mustDate(t, picked))
			twice.SelectDate(mustDate(t, picked))

			assert.Equal(t, once.State(), twice.State())
		})
	}
}

func TestController_ReplaceSnapshot_RevalidatesSelection(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.SelectDate(mustDate(t, "2024-06-10"))
	require.Equal(t, domain.PhaseDateChosenWithSlots, c.State().Phase())

	c.ReplaceSnapshot(snapshotOf(t, map[string][]string{"2024-06-12": {"14:00"}}, "2024-06-12"))

	state := c.State()
	assert.Equal(t, domain.PhaseDateChosenNoSlots, state.Phase())
	assert.Equal(t, domain.MsgNoSlotsForDate, state.ErrorMessage)
	assert.Equal(t, "2024-06-10", state.SelectedDate.String())
	assert.Equal(t, []string{"2024-06-10", "2024-06-10"}, rec.dates)

	// Новый снимок снова содержит дату: слоты берутся из него
	c.ReplaceSnapshot(snapshotOf(t, map[string][]string{"2024-06-10": {"16:00"}}, "2024-06-10"))
	state = c.State()
	assert.Equal(t, domain.PhaseDateChosenWithSlots, state.Phase())
	assert.Equal(t, []string{"16:00"}, state.SelectedDaySlots)
	assert.Empty(t, state.ErrorMessage)
}

func TestController_ReplaceSnapshot_WithoutSelection(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)

	c.BeginLoading()
	c.ReplaceSnapshot(scenarioSnapshot(t))

	state := c.State()
	assert.Equal(t, domain.PhaseIdle, state.Phase())
	assert.False(t, state.Loading)
	assert.Empty(t, rec.dates)
	assert.True(t, c.IsEligible(mustDate(t, "2024-06-10")))
}

func TestController_FailLoading(t *testing.T) {
	c := NewController(nil)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.SelectDate(mustDate(t, "2024-06-10"))

	c.BeginLoading()
	assert.Equal(t, domain.ViewLoading, c.State().View())
	c.FailLoading()

	state := c.State()
	assert.False(t, state.Loading)
	assert.Equal(t, domain.MsgFailedToLoadSlots, state.ErrorMessage)
	assert.Equal(t, []string{}, state.SelectedDaySlots)
	assert.Nil(t, c.Snapshot())
	assert.False(t, c.IsEligible(mustDate(t, "2024-06-10")))
	assert.Empty(t, c.EligibleDates())

	// Успешная повторная загрузка убирает сообщение об ошибке
	c.ReplaceSnapshot(scenarioSnapshot(t))
	assert.Equal(t, []string{"09:00", "10:00"}, c.State().SelectedDaySlots)
	assert.Empty(t, c.State().ErrorMessage)
}

func TestController_FailLoading_ClearedOnSuccessWithoutSelection(t *testing.T) {
	c := NewController(nil)
	c.BeginLoading()
	c.FailLoading()
	require.Equal(t, domain.MsgFailedToLoadSlots, c.State().ErrorMessage)

	c.BeginLoading()
	c.ReplaceSnapshot(scenarioSnapshot(t))

	assert.Empty(t, c.State().ErrorMessage)
	assert.Equal(t, domain.ViewSlots, c.State().View())
}

func TestController_SelectDuringLoadingUsesOldSnapshot(t *testing.T) {
	c := NewController(nil)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.BeginLoading()

	c.SelectDate(mustDate(t, "2024-06-10"))

	state := c.State()
	assert.True(t, state.Loading)
	assert.Equal(t, []string{"09:00", "10:00"}, state.SelectedDaySlots)
	assert.Equal(t, domain.ViewLoading, state.View())
}

func TestController_SelectTime(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.SelectDate(mustDate(t, "2024-06-10"))
	before := c.State()

	c.SelectTime("10:00")
	// Принадлежность слотам дня не проверяется
	c.SelectTime("23:59")

	assert.Equal(t, []string{"10:00", "23:59"}, rec.times)
	assert.Equal(t, before, c.State())
}

func TestController_DuplicateDatesFirstWins(t *testing.T) {
	snap := domain.NewSnapshot(5, time.Time{}, []domain.DaySlots{
		{Date: mustDate(t, "2024-06-10"), Times: []string{"09:00"}},
		{Date: mustDate(t, "2024-06-10"), Times: []string{"18:00"}},
	})
	c := NewController(nil)
	c.ReplaceSnapshot(snap)

	c.SelectDate(mustDate(t, "2024-06-10"))

	assert.Equal(t, []string{"09:00"}, c.State().SelectedDaySlots)
	assert.Equal(t, []domain.CalendarDate{mustDate(t, "2024-06-10")}, c.EligibleDates())
}

func TestController_StateIsACopy(t *testing.T) {
	c := NewController(nil)
	c.ReplaceSnapshot(scenarioSnapshot(t))
	c.SelectDate(mustDate(t, "2024-06-10"))

	state := c.State()
	state.SelectedDaySlots[0] = "00:00"
	state.SelectedDate.Day = 1

	fresh := c.State()
	assert.Equal(t, []string{"09:00", "10:00"}, fresh.SelectedDaySlots)
	assert.Equal(t, "2024-06-10", fresh.SelectedDate.String())
}

func TestController_InvariantsHoldAcrossTransitions(t *testing.T) {
	c := NewController(nil)
	steps := []func(){
		func() { c.SelectDate(mustDate(t, "2024-06-10")) },
		func() { c.BeginLoading() },
		func() { c.ReplaceSnapshot(scenarioSnapshot(t)) },
		func() { c.SelectDate(mustDate(t, "2024-06-10")) },
		func() { c.SelectDate(mustDate(t, "2024-06-11")) },
		func() { c.FailLoading() },
		func() { c.ClearDate() },
		func() { c.ReplaceSnapshot(scenarioSnapshot(t)) },
		func() { c.SelectDate(mustDate(t, "2024-06-10")) },
	}

	for i, step := range steps {
		step()
		s := c.State()

		if len(s.SelectedDaySlots) > 0 {
			assert.NotNil(t, s.SelectedDate, "step %d", i)
			assert.Empty(t, s.ErrorMessage, "step %d", i)
		}
		if s.SelectedDate != nil && len(s.SelectedDaySlots) == 0 {
			assert.NotEmpty(t, s.ErrorMessage, "step %d", i)
		}
	}
}

func TestController_EligibilityFollowsCurrentSnapshot(t *testing.T) {
	c := NewController(nil)
	assert.Empty(t, c.EligibleDates())
	assert.False(t, c.IsEligible(mustDate(t, "2024-06-10")))

	c.ReplaceSnapshot(snapshotOf(t, map[string][]string{
		"2024-06-12": {"14:00"},
		"2024-06-10": {"09:00"},
	}, "2024-06-12", "2024-06-10"))
	assert.Equal(t, []domain.CalendarDate{mustDate(t, "2024-06-12"), mustDate(t, "2024-06-10")}, c.EligibleDates())
	assert.True(t, c.IsEligible(mustDate(t, "2024-06-10")))

	// Новый снимок полностью заменяет набор доступных дат
	c.ReplaceSnapshot(snapshotOf(t, map[string][]string{"2024-06-20": {"15:00"}}, "2024-06-20"))
	assert.Equal(t, []domain.CalendarDate{mustDate(t, "2024-06-20")}, c.EligibleDates())
	assert.False(t, c.IsEligible(mustDate(t, "2024-06-10")))
	assert.True(t, c.IsEligible(mustDate(t, "2024-06-20")))

	c.FailLoading()
	assert.Empty(t, c.EligibleDates())
	assert.False(t, c.IsEligible(mustDate(t, "2024-06-20")))
}
