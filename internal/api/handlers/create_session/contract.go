package create_session

import "github.com/m04kA/SMC-SlotPicker/internal/service/session"

type SessionManager interface {
	Create(specialistID int64) (*session.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
