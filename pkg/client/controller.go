package client

import (
	"context"
	"sync"
)

// FetchFunc loads the current list of a resource
type FetchFunc[T any] func(ctx context.Context) Result[[]T]

// ListController owns one page's list state: the loaded items and the
// row selection. Every entity page (drivers, products, routes,
// shipments, payrolls) wires its fetch function into one of these
// instead of duplicating the load/reload/select plumbing.
type ListController[T any] struct {
	fetch    FetchFunc[T]
	notifier Notifier

	mu         sync.Mutex
	items      []T
	selection  *Selection
	generation uint64
}

func NewListController[T any](fetch FetchFunc[T], notifier Notifier) *ListController[T] {
	return &ListController[T]{
		fetch:     fetch,
		notifier:  notifier,
		selection: NewSelection(),
	}
}

// Reload refetches the list. The selection always resets, success or
// not. A reload started while an older one is still in flight wins:
// the generation counter makes the superseded response a no-op instead
// of letting it overwrite newer data.
func (c *ListController[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	res := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer reload superseded this one
		return nil
	}

	c.selection.Clear()
	if !res.Ok {
		// Never leave stale rows behind a failed read
		c.items = nil
		if c.notifier != nil {
			c.notifier.Error(res.Err.Message)
		}
		return res.Err
	}

	c.items = res.Value
	return nil
}

// Items returns the currently loaded list
func (c *ListController[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Selection exposes the controller's row selection
func (c *ListController[T]) Selection() *Selection {
	return c.selection
}
