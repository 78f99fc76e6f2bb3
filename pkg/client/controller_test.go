package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func TestListControllerReloadPopulatesItems(t *testing.T) {
	notifier := &recordingNotifier{}
	c := NewListController(func(ctx context.Context) Result[[]string] {
		return ok([]string{"x", "y"})
	}, notifier)

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, []string{"x", "y"}, c.Items())
	assert.Empty(t, notifier.errors)
}

func TestListControllerReloadResetsSelection(t *testing.T) {
	c := NewListController(func(ctx context.Context) Result[[]string] {
		return ok([]string{"x"})
	}, &recordingNotifier{})

	c.Selection().SelectAll([]string{"a", "b"})
	require.NoError(t, c.Reload(context.Background()))

	assert.Equal(t, 0, c.Selection().Count())
}

func TestListControllerFailedReloadClearsItemsAndNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	calls := 0
	c := NewListController(func(ctx context.Context) Result[[]string] {
		calls++
		if calls == 1 {
			return ok([]string{"x"})
		}
		return fail[[]string](&APIError{StatusCode: 500, Message: "boom"})
	}, notifier)

	require.NoError(t, c.Reload(context.Background()))
	require.NotEmpty(t, c.Items())

	err := c.Reload(context.Background())
	require.Error(t, err)
	// Stale rows never survive a failed read
	assert.Empty(t, c.Items())
	assert.Equal(t, []string{"boom"}, notifier.errors)
}

func TestListControllerSupersededReloadIsDiscarded(t *testing.T) {
	var c *ListController[string]
	calls := 0
	c = NewListController(func(ctx context.Context) Result[[]string] {
		calls++
		if calls == 1 {
			// A newer reload finishes while this one is still in flight
			require.NoError(t, c.Reload(ctx))
			return ok([]string{"stale"})
		}
		return ok([]string{"fresh"})
	}, &recordingNotifier{})

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, []string{"fresh"}, c.Items())
}
