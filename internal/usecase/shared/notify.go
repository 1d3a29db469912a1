package shared

import (
	"context"

	"github.com/runoshun/whiteboard/internal/domain"
)

// NotifyChanged announces a saved edit. A nil notifier or clock is allowed.
func NotifyChanged(ctx context.Context, n domain.Notifier, clock domain.Clock, taskID string) {
	if n == nil {
		return
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	n.Notify(ctx, domain.Event{
		Time:   clock.Now(),
		Type:   domain.EventOutlineChanged,
		TaskID: taskID,
		Source: domain.SourceFrom(ctx),
	})
}
