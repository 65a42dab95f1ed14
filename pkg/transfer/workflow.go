// Package transfer encodes the rules for moving gold between the
// central balance and branches: client-side pre-validation, the
// optimistic-timeout completion policy and the cache refresh that
// follows every outcome.
package transfer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
)

// Timeout is the fixed local budget a transfer call races against, and
// the bound applied to the reads issued while refreshing.
const Timeout = 5 * time.Second

// API is the complete set of backend operations the workflow needs.
type API interface {
	resources.BalanceReader
	resources.BalanceWriter
	resources.BranchReader
	resources.TransferAPI
	resources.TransactionReader
}

// Workflow owns the transfer rules. All mutations flow through here;
// pages never call the transfer resources directly.
type Workflow struct {
	api     API
	caches  *cache.Store
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a transfer workflow over the given API and cache store.
func New(api API, caches *cache.Store, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{api: api, caches: caches, logger: logger, timeout: Timeout}
}

// Result describes a completed (or assumed-completed) transfer.
type Result struct {
	// Optimistic is true when the server did not acknowledge within
	// the local budget and success was assumed. The caches have been
	// refreshed to reflect whatever the server actually did.
	Optimistic bool
	// FinalAmount is the display-only net amount: amount − ugar for
	// branch→balance, the plain amount otherwise. Never sent to the
	// server.
	FinalAmount float64
}

// FinalAmount is the display-only arithmetic for a branch→balance
// transfer with an ugar deduction.
func FinalAmount(amount, ugar float64) float64 { return amount - ugar }

// BalanceToBranchInput moves gold from the central balance to a branch.
type BalanceToBranchInput struct {
	Amount   float64
	BranchID models.FlexID
	Image    *Attachment
}

// BalanceToBranch validates and issues a balance→branch transfer with
// the optimistic-timeout policy.
func (w *Workflow) BalanceToBranch(ctx context.Context, in BalanceToBranchInput) (Result, error) {
	if err := w.validateBalanceToBranch(in); err != nil {
		return Result{}, err
	}
	req := resources.ReceiveRequest{Amount: in.Amount, BranchID: in.BranchID, Image: in.Image.file()}
	optimistic, err := w.race(ctx, "balance_to_branch", func(callCtx context.Context) error {
		return w.api.BalanceToBranch(callCtx, req)
	})
	w.RefreshAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Optimistic: optimistic, FinalAmount: in.Amount}, nil
}

// BranchToBalanceInput moves gold from a branch back to the central
// balance, deducting an optional ugar loss.
type BranchToBalanceInput struct {
	Amount     float64
	BranchID   models.FlexID
	UgarAmount float64
	Reason     string
	Image      *Attachment
}

// BranchToBalance validates and issues a branch→balance transfer with
// the optimistic-timeout policy. The returned FinalAmount is
// amount − ugar.
func (w *Workflow) BranchToBalance(ctx context.Context, in BranchToBalanceInput) (Result, error) {
	if err := w.validateBranchToBalance(in); err != nil {
		return Result{}, err
	}
	req := resources.GiveRequest{
		Amount:     in.Amount,
		BranchID:   in.BranchID,
		UgarAmount: in.UgarAmount,
		Reason:     in.Reason,
		Image:      in.Image.file(),
	}
	optimistic, err := w.race(ctx, "branch_to_balance", func(callCtx context.Context) error {
		return w.api.BranchToBalance(callCtx, req)
	})
	w.RefreshAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Optimistic: optimistic, FinalAmount: FinalAmount(in.Amount, in.UgarAmount)}, nil
}

// BranchToBranchInput moves gold between two branches.
type BranchToBranchInput struct {
	Amount       float64
	FromBranchID models.FlexID
	ToBranchID   models.FlexID
	Image        *Attachment
}

// BranchToBranch validates and issues a branch→branch transfer. Unlike
// the other two directions this trusts the server's explicit reply: no
// optimistic fallback, a timeout is a failure.
func (w *Workflow) BranchToBranch(ctx context.Context, in BranchToBranchInput) (Result, error) {
	if err := w.validateBranchToBranch(in); err != nil {
		return Result{}, err
	}
	req := resources.MoveRequest{
		Amount:       in.Amount,
		FromBranchID: in.FromBranchID,
		ToBranchID:   in.ToBranchID,
		Image:        in.Image.file(),
	}
	callCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.api.BranchToBranch(callCtx, req)
	cancel()
	w.RefreshAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{FinalAmount: in.Amount}, nil
}

// AddIncome records gold added to the central balance.
func (w *Workflow) AddIncome(ctx context.Context, amount float64, status models.Status, image *Attachment) error {
	return w.addEntry(ctx, amount, status, image, w.api.AddIncome)
}

// AddOutcome records gold removed from the central balance.
func (w *Workflow) AddOutcome(ctx context.Context, amount float64, status models.Status, image *Attachment) error {
	return w.addEntry(ctx, amount, status, image, w.api.AddOutcome)
}

func (w *Workflow) addEntry(ctx context.Context, amount float64, status models.Status, image *Attachment, call func(context.Context, resources.EntryRequest) error) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if image != nil {
		if err := image.Validate(); err != nil {
			return err
		}
	}
	balanceID := models.FlexID("1")
	if snap := w.caches.Current(); snap.Balance != nil {
		balanceID = snap.Balance.ID
	}
	req := resources.EntryRequest{
		Amount:    amount,
		Status:    status.OrCompleted(),
		BalanceID: balanceID,
		Image:     image.file(),
	}
	callCtx, cancel := context.WithTimeout(ctx, w.timeout)
	err := call(callCtx, req)
	cancel()
	w.RefreshAll(ctx)
	return err
}

// race runs the call against the fixed local timer. If the timer
// elapses first, success is assumed (optimistic true), the call is
// left running and its late result is discarded: the refresh that
// follows already captures whatever the server did, and retrying could
// move the amount twice.
func (w *Workflow) race(ctx context.Context, op string, call func(context.Context) error) (optimistic bool, err error) {
	done := make(chan error, 1)
	// The call must survive the initiating view being dismissed, so it
	// runs on a context detached from cancellation.
	callCtx := context.WithoutCancel(ctx)
	go func() { done <- call(callCtx) }()

	select {
	case err := <-done:
		return false, err
	case <-time.After(w.timeout):
		w.logger.Warn("transfer not acknowledged in time, assuming success",
			slog.String("operation", op),
			slog.Duration("budget", w.timeout))
		return true, nil
	}
}

// RefreshAll refetches balance, branches and transactions concurrently
// and replaces each cached collection wholesale. Runs after every
// transfer outcome, including failures: a failure response is not
// proof the server state didn't change. Individual fetch failures are
// logged and skipped so the others still land.
func (w *Workflow) RefreshAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if balance, err := w.api.GetBalance(ctx); err == nil {
			w.caches.SetBalance(balance)
		} else {
			w.logger.Warn("balance refresh failed", slog.String("error", err.Error()))
		}
	}()
	go func() {
		defer wg.Done()
		if branches, err := w.api.ListBranches(ctx); err == nil {
			w.caches.SetBranches(branches)
		} else {
			w.logger.Warn("branch refresh failed", slog.String("error", err.Error()))
		}
	}()
	go func() {
		defer wg.Done()
		if txs, err := w.api.ListTransactions(ctx); err == nil {
			w.caches.SetTransactions(txs)
		} else {
			w.logger.Warn("transaction refresh failed", slog.String("error", err.Error()))
		}
	}()
	wg.Wait()
}
