package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPrompter struct {
	answer bool
	asked  int
}

func (p *stubPrompter) Confirm(ctx context.Context, message string) bool {
	p.asked++
	return p.answer
}

type recordingMutator struct {
	deleteCalls [][]string
	moveCalls   []struct {
		ids    []string
		target string
	}
	deleteResult Result[string]
	moveResult   Result[string]
}

func (m *recordingMutator) BulkDeleteShipments(ctx context.Context, ids []string) Result[string] {
	m.deleteCalls = append(m.deleteCalls, ids)
	return m.deleteResult
}

func (m *recordingMutator) MoveShipments(ctx context.Context, ids []string, targetPayrollID string) Result[string] {
	m.moveCalls = append(m.moveCalls, struct {
		ids    []string
		target string
	}{ids, targetPayrollID})
	return m.moveResult
}

func TestBulkDeleteEmptySelectionNeverPromptsOrCalls(t *testing.T) {
	prompter := &stubPrompter{answer: true}
	api := &recordingMutator{}
	w := &BulkDeleteWorkflow{API: api, Prompter: prompter, Notifier: &recordingNotifier{}}

	err := w.Run(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, 0, prompter.asked)
	assert.Empty(t, api.deleteCalls)
}

func TestBulkDeleteDeclinedConfirmationMakesNoCall(t *testing.T) {
	prompter := &stubPrompter{answer: false}
	api := &recordingMutator{}
	w := &BulkDeleteWorkflow{API: api, Prompter: prompter, Notifier: &recordingNotifier{}}

	err := w.Run(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, 1, prompter.asked)
	assert.Empty(t, api.deleteCalls)
}

func TestBulkDeleteSuccessNotifiesAndReloads(t *testing.T) {
	notifier := &recordingNotifier{}
	api := &recordingMutator{deleteResult: ok("2 shipments deleted")}
	reloaded := 0
	w := &BulkDeleteWorkflow{
		API:      api,
		Prompter: &stubPrompter{answer: true},
		Notifier: notifier,
		Reload: func(ctx context.Context) error {
			reloaded++
			return nil
		},
	}

	require.NoError(t, w.Run(context.Background(), []string{"a", "b"}))

	require.Len(t, api.deleteCalls, 1)
	assert.Equal(t, []string{"a", "b"}, api.deleteCalls[0])
	assert.Equal(t, []string{"2 shipments deleted"}, notifier.successes)
	assert.Equal(t, 1, reloaded)
}

func TestBulkDeleteFailureNotifiesErrorWithoutReload(t *testing.T) {
	notifier := &recordingNotifier{}
	api := &recordingMutator{deleteResult: fail[string](&APIError{StatusCode: 500, Message: "db down"})}
	w := &BulkDeleteWorkflow{
		API:      api,
		Prompter: &stubPrompter{answer: true},
		Notifier: notifier,
		Reload: func(ctx context.Context) error {
			t.Fatal("reload must not run after a failed delete")
			return nil
		},
	}

	err := w.Run(context.Background(), []string{"a"})

	require.Error(t, err)
	assert.Equal(t, []string{"db down"}, notifier.errors)
	assert.Empty(t, notifier.successes)
}

func TestMoveWithoutTargetIsLocalErrorOnly(t *testing.T) {
	notifier := &recordingNotifier{}
	prompter := &stubPrompter{answer: true}
	api := &recordingMutator{}
	w := &MoveWorkflow{API: api, Prompter: prompter, Notifier: notifier}

	err := w.Run(context.Background(), []string{"a"}, nil)
	assert.ErrorIs(t, err, ErrNoPayrollSelected)

	empty := ""
	err = w.Run(context.Background(), []string{"a"}, &empty)
	assert.ErrorIs(t, err, ErrNoPayrollSelected)

	// Precondition failures never reach the prompter or the network
	assert.Equal(t, 0, prompter.asked)
	assert.Empty(t, api.moveCalls)
	assert.Equal(t, []string{"No payroll selected", "No payroll selected"}, notifier.errors)
}

func TestMoveSuccessCallsOncePerSelection(t *testing.T) {
	notifier := &recordingNotifier{}
	api := &recordingMutator{moveResult: ok("3 shipments moved")}
	reloaded := 0
	w := &MoveWorkflow{
		API:      api,
		Prompter: &stubPrompter{answer: true},
		Notifier: notifier,
		Reload: func(ctx context.Context) error {
			reloaded++
			return nil
		},
	}

	target := "payroll-2"
	require.NoError(t, w.Run(context.Background(), []string{"a", "b", "c"}, &target))

	require.Len(t, api.moveCalls, 1)
	assert.Equal(t, []string{"a", "b", "c"}, api.moveCalls[0].ids)
	assert.Equal(t, "payroll-2", api.moveCalls[0].target)
	assert.Equal(t, []string{"3 shipments moved"}, notifier.successes)
	assert.Equal(t, 1, reloaded)
}
