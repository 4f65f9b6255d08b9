package domain

import "errors"

// Severity ranks a Notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a message destined for the user of a session, typically
// shown before a pending operation continues.
type Notification struct {
	Message  string
	Severity Severity
	Err      error
}

// NewNotification returns an informational notification.
func NewNotification(msg string) Notification {
	return Notification{Message: msg, Severity: SeverityInfo}
}

// NewErrorNotification wraps err in a notification of error severity. A
// validation error keeps its field messages as the notification text.
func NewErrorNotification(err error) Notification {
	msg := err.Error()
	var verr *ValidationError
	if errors.As(err, &verr) {
		msg = verr.Error()
	}
	return Notification{Message: msg, Severity: SeverityError, Err: err}
}
