// Package events publishes book change notifications after a mutation commits.
package events

import (
	"context"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Type names a change notification. It doubles as the AMQP routing key.
type Type string

const (
	BookCreated Type = "book.created"
	BookUpdated Type = "book.updated"
	BookDeleted Type = "book.deleted"
)

// Event is the JSON body of a change notification.
type Event struct {
	Type       Type           `json:"type"`
	BookID     uint           `json:"book_id"`
	Book       *entities.Book `json:"book,omitempty"` // absent for deletions
	OccurredAt time.Time      `json:"occurred_at"`
	RequestID  string         `json:"request_id,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(t Type, book entities.Book) Event {
	e := Event{Type: t, BookID: book.ID, OccurredAt: time.Now().UTC()}
	if t != BookDeleted {
		b := book
		e.Book = &b
	}
	return e
}

// Publisher delivers change notifications.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher discards every event. Used when notifications are not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
