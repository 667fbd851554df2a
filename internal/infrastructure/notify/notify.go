// Package notify delivers engine events to users. Delivery transports (push,
// email) sit outside the engine; this implementation writes to the process
// log so operators can trace the stream.
package notify

import (
	"context"
	"log"

	"peerlend/internal/domain/event"
)

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(_ context.Context, notes []event.Notification) {
	for _, note := range notes {
		log.Printf("notify user=%s kind=%s msg=%q", note.RecipientUserID, note.Kind, note.Message)
	}
}
