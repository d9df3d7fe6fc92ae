package select_date

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotPicker/internal/api/handlers"
	"github.com/m04kA/SMC-SlotPicker/internal/domain"
	"github.com/m04kA/SMC-SlotPicker/internal/service/session"
	"github.com/m04kA/SMC-SlotPicker/pkg/logger"
)

type staticLoader struct{}

func (staticLoader) Load(_ context.Context, id int64) (*domain.Snapshot, error) {
	d, _ := domain.ParseDate("2024-06-10")
	return domain.NewSnapshot(id, time.Now(), []domain.DaySlots{
		{Date: d, Times: []string{"09:00", "10:00"}},
	}), nil
}

func newSession(t *testing.T) (*session.Manager, *session.Session) {
	t.Helper()
	mgr := session.NewManager(staticLoader{}, session.Config{}, nil, logger.NewNop())
	s, err := mgr.Create(5)
	require.NoError(t, err)
	s.Wait()
	return mgr, s
}

func put(mgr *session.Manager, sessionID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sessions/{sessionId}/date", NewHandler(mgr, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/sessions/"+sessionID+"/date", strings.NewReader(body)))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlers.SessionResponse {
	t.Helper()
	var resp handlers.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandler_DateWithSlots(t *testing.T) {
	mgr, s := newSession(t)
	defer mgr.Shutdown()

	rec := put(mgr, s.ID(), `{"date":"2024-06-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, domain.PhaseDateChosenWithSlots, resp.Phase)
	assert.Equal(t, domain.ViewSlots, resp.View)
	assert.Equal(t, []string{"09:00", "10:00"}, resp.SelectedDaySlots)
	require.NotNil(t, resp.SelectedDate)
	assert.Equal(t, "2024-06-10", resp.SelectedDate.String())
	assert.Equal(t, "2024-06-10", resp.ReportedDate)
}

func TestHandler_DateWithoutSlots(t *testing.T) {
	mgr, s := newSession(t)
	defer mgr.Shutdown()

	rec := put(mgr, s.ID(), `{"date":"2024-06-11"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, domain.PhaseDateChosenNoSlots, resp.Phase)
	assert.Equal(t, domain.ViewMessage, resp.View)
	assert.Equal(t, []string{}, resp.SelectedDaySlots)
	assert.Equal(t, domain.MsgNoSlotsForDate, resp.ErrorMessage)
}

func TestHandler_ClearDate(t *testing.T) {
	mgr, s := newSession(t)
	defer mgr.Shutdown()
	require.NoError(t, s.SelectDate(domain.NewCalendarDate(2024, time.June, 11)))

	rec := put(mgr, s.ID(), `{"date":null}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	assert.Equal(t, domain.PhaseIdle, resp.Phase)
	assert.Nil(t, resp.SelectedDate)
	assert.Empty(t, resp.ErrorMessage)
}

func TestHandler_Errors(t *testing.T) {
	mgr, s := newSession(t)
	defer mgr.Shutdown()

	tests := []struct {
		name       string
		sessionID  string
		body       string
		wantStatus int
	}{
		{name: "bad date", sessionID: s.ID(), body: `{"date":"10.06.2024"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", sessionID: s.ID(), body: `{"date":`, wantStatus: http.StatusBadRequest},
		{name: "unknown session", sessionID: "missing", body: `{"date":"2024-06-10"}`, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(mgr, tt.sessionID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
