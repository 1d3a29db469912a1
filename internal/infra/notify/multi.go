package notify

import (
	"context"

	"github.com/runoshun/whiteboard/internal/domain"
)

// Func adapts a function to domain.Notifier.
type Func func(ctx context.Context, ev domain.Event)

// Notify calls f.
func (f Func) Notify(ctx context.Context, ev domain.Event) {
	f(ctx, ev)
}

// Multi fans an event out to several notifiers, in order.
type Multi []domain.Notifier

// Notify forwards ev to every non-nil notifier.
func (m Multi) Notify(ctx context.Context, ev domain.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, ev)
		}
	}
}

// Nop discards events.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, domain.Event) {}
