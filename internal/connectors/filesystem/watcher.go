package filesystem

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// CacheEvent reports a change in a source directory's cache validity.
type CacheEvent struct {
	// Slug identifies the source whose directory changed.
	Slug string

	// Valid is the cache validity after the change.
	Valid bool
}

// Watch observes a source's raw directory and emits an event whenever
// its cache validity changes (a recognised data file appears or the
// last one disappears). The channel closes when ctx is cancelled or
// the watcher fails.
func (c *Connector) Watch(ctx context.Context, slug string) (<-chan CacheEvent, error) {
	dir := c.Resolve(slug)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	events := make(chan CacheEvent, 1)
	last := c.HasValidData(dir)

	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				valid := c.HasValidData(dir)
				if valid == last {
					continue
				}
				last = valid
				select {
				case events <- CacheEvent{Slug: slug, Valid: valid}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error for %s: %v", slug, err)
			}
		}
	}()

	return events, nil
}
