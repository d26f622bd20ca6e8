package model

// Notifier delivers an out-of-band notification, e.g. an alert email.
type Notifier interface {
	Send(subject, body string) error
}
