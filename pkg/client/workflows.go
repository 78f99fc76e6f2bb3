package client

import (
	"context"
	"errors"
	"fmt"
)

// Notifier surfaces operation outcomes to the user (toast equivalent)
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConfirmationPrompter gates destructive operations behind an explicit
// user decision (modal equivalent)
type ConfirmationPrompter interface {
	Confirm(ctx context.Context, message string) bool
}

// Precondition failures are local: no prompt is shown and no request is
// sent when these are returned.
var (
	ErrNoSelection       = errors.New("no shipments selected")
	ErrNoPayrollSelected = errors.New("no payroll selected")
)

// ShipmentMutator is the slice of the API the bulk workflows need.
// *Client implements it.
type ShipmentMutator interface {
	BulkDeleteShipments(ctx context.Context, ids []string) Result[string]
	MoveShipments(ctx context.Context, ids []string, targetPayrollID string) Result[string]
}

// BulkDeleteWorkflow soft-deletes the selected shipments as one logical
// operation: confirm, call, notify, reload. Failures leave the list
// untouched; the reload after success is the single source of truth.
type BulkDeleteWorkflow struct {
	API      ShipmentMutator
	Prompter ConfirmationPrompter
	Notifier Notifier
	Reload   func(ctx context.Context) error
}

func (w *BulkDeleteWorkflow) Run(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		// UI keeps the action disabled; nothing to confirm or send
		return ErrNoSelection
	}

	msg := fmt.Sprintf("Delete %d shipment(s)?", len(ids))
	if !w.Prompter.Confirm(ctx, msg) {
		return nil
	}

	res := w.API.BulkDeleteShipments(ctx, ids)
	if !res.Ok {
		w.Notifier.Error(res.Err.Message)
		return res.Err
	}

	w.Notifier.Success(res.Value)
	if w.Reload != nil {
		return w.Reload(ctx)
	}
	return nil
}

// MoveWorkflow reassigns the selected shipments to another payroll
// batch. The target must be chosen before anything leaves the process:
// a nil target is a local error, never a request.
type MoveWorkflow struct {
	API      ShipmentMutator
	Prompter ConfirmationPrompter
	Notifier Notifier
	Reload   func(ctx context.Context) error
}

func (w *MoveWorkflow) Run(ctx context.Context, ids []string, targetPayrollID *string) error {
	if targetPayrollID == nil || *targetPayrollID == "" {
		w.Notifier.Error("No payroll selected")
		return ErrNoPayrollSelected
	}
	if len(ids) == 0 {
		return ErrNoSelection
	}

	msg := fmt.Sprintf("Move %d shipment(s) to the selected payroll?", len(ids))
	if !w.Prompter.Confirm(ctx, msg) {
		return nil
	}

	res := w.API.MoveShipments(ctx, ids, *targetPayrollID)
	if !res.Ok {
		w.Notifier.Error(res.Err.Message)
		return res.Err
	}

	w.Notifier.Success(res.Value)
	if w.Reload != nil {
		return w.Reload(ctx)
	}
	return nil
}
