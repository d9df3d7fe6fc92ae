package check_date_eligibility

import "github.com/m04kA/SMC-SlotPicker/internal/service/session"

type SessionManager interface {
	Get(id string) (*session.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
