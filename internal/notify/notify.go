// Package notify is the non-fatal, user-facing signal channel: toasts and
// the "open the cart drawer" hint. Nothing sent here is an error to the
// caller; it is something the UI should show.
package notify

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Kind string

const (
	KindToast    Kind = "toast"
	KindCartOpen Kind = "cart_open"
)

// Notice is one message for the presentation layer.
type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier receives notices. Implementations must not block for long and
// must be safe for concurrent use.
type Notifier interface {
	Notify(n Notice)
}

func newNotice(level Level, kind Kind, msg string) Notice {
	return Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	}
}

func Success(to Notifier, msg string) { to.Notify(newNotice(LevelSuccess, KindToast, msg)) }

func Error(to Notifier, msg string) { to.Notify(newNotice(LevelError, KindToast, msg)) }

// OpenCart asks the UI to show the cart drawer.
func OpenCart(to Notifier) { to.Notify(newNotice(LevelInfo, KindCartOpen, "")) }

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}
