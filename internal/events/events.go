package events

import (
	"context"
	"errors"
	"time"

	"github.com/ogc16/FitnessApp/internal/models"
)

const (
	// PostCreatedEvent is the Kafka event name; websocket clients see
	// TypePostCreated.
	PostCreatedEvent = "post.created"
	TypePostCreated  = "post_created"
)

type PostCreated struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Post       models.Post `json:"post"`
}

func NewPostCreated(post models.Post) PostCreated {
	return PostCreated{
		Type:       TypePostCreated,
		OccurredAt: time.Now().UTC(),
		Post:       post,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event PostCreated) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event PostCreated) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, PostCreated) error { return nil }
