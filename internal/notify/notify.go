// Package notify carries user-facing notifications from background work to
// the UI.
package notify

import "time"

// Type is the severity of a notification.
type Type string

const (
	TypeInfo  Type = "info"
	TypeError Type = "error"
)

// Notification is one message shown to the user.
type Notification struct {
	Type      Type
	Message   string
	Timestamp time.Time
}

// Notifier is the process-wide notification service.
type Notifier interface {
	Notify(n Notification)
}

// Info returns an info notification.
func Info(msg string) Notification {
	return Notification{Type: TypeInfo, Message: msg}
}

// Error returns an error notification.
func Error(msg string) Notification {
	return Notification{Type: TypeError, Message: msg}
}

// IsError reports whether n is error-styled.
func (n Notification) IsError() bool {
	return n.Type == TypeError
}

// Fill sets the defaults a notifier applies: info type and the current time.
func Fill(n Notification) Notification {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	return n
}

// Recorder keeps every notification in memory. Used by the CLI and tests.
type Recorder struct {
	Items []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.Items = append(r.Items, Fill(n))
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	if len(r.Items) == 0 {
		return Notification{}, false
	}
	return r.Items[len(r.Items)-1], true
}
