package realtime

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var ErrStreamClosed = errors.New("change stream closed")

type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Feed keeps hub in sync with a collection: it loads the full collection,
// publishes it, and reloads on every change signal from w.
//
// When the store cannot open a change stream (standalone servers) the
// initial snapshot is still published and Feed returns nil.
func Feed[T any](ctx context.Context, name string, hub *Hub[T], load func(context.Context) (T, error), w Watcher, log *zap.Logger) error {
	log = log.With(zap.String("collection", name))

	changes, err := w.Watch(ctx)
	if err != nil {
		log.Warn("Live updates unavailable, serving initial snapshot only", zap.Error(err))
		changes = nil
	}

	publish := func() {
		snapshot, err := load(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("Failed to load snapshot", zap.Error(err))
			}
			return
		}
		hub.Publish(snapshot)
	}

	publish()
	if changes == nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrStreamClosed
			}
			publish()
		}
	}
}
