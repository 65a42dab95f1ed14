// Package ledger is the read path of the dashboard: it reconciles the
// central balance, the branches and the transaction history into one
// filterable ledger view.
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
)

// API is the read surface the ledger needs.
type API interface {
	resources.BalanceReader
	resources.BranchReader
	resources.TransactionReader
}

// View owns the ledger read path over the shared snapshot cache.
type View struct {
	api    API
	caches *cache.Store
	logger *slog.Logger
}

// New creates a ledger view.
func New(api API, caches *cache.Store, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{api: api, caches: caches, logger: logger}
}

// Report records the outcome of each of the three fetches. A failed
// fetch never blocks the others from landing: the view renders
// whatever arrived.
type Report struct {
	BalanceErr      error
	BranchesErr     error
	TransactionsErr error
}

// Complete reports whether every fetch succeeded.
func (r Report) Complete() bool {
	return r.BalanceErr == nil && r.BranchesErr == nil && r.TransactionsErr == nil
}

// Load fetches balance, branches and transactions concurrently and
// replaces each cached collection wholesale as it arrives.
func (v *View) Load(ctx context.Context) Report {
	var report Report
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		balance, err := v.api.GetBalance(ctx)
		if err != nil {
			report.BalanceErr = err
			v.logger.Warn("balance fetch failed", slog.String("error", err.Error()))
			return
		}
		v.caches.SetBalance(balance)
	}()
	go func() {
		defer wg.Done()
		branches, err := v.api.ListBranches(ctx)
		if err != nil {
			report.BranchesErr = err
			v.logger.Warn("branch fetch failed", slog.String("error", err.Error()))
			return
		}
		v.caches.SetBranches(branches)
	}()
	go func() {
		defer wg.Done()
		txs, err := v.api.ListTransactions(ctx)
		if err != nil {
			report.TransactionsErr = err
			v.logger.Warn("transaction fetch failed", slog.String("error", err.Error()))
			return
		}
		v.caches.SetTransactions(txs)
	}()
	wg.Wait()
	return report
}

// Transactions returns the cached transactions filtered and sorted for
// display.
func (v *View) Transactions(f Filter) []models.Transaction {
	return Apply(v.caches.Current().Transactions, f)
}

// Totals are the reconciliation numbers shown above the ledger.
type Totals struct {
	MainBalance  float64
	BranchTotal  float64
	CompanyTotal float64
}

// Totals recomputes the reconciliation totals from the latest snapshot
// on every call. Purely derived; never cached apart from its inputs.
func (v *View) Totals() Totals {
	snap := v.caches.Current()
	var t Totals
	if snap.Balance != nil {
		t.MainBalance = snap.Balance.Amount
	}
	for _, branch := range snap.Branches {
		t.BranchTotal += branch.Amount
	}
	t.CompanyTotal = t.MainBalance + t.BranchTotal
	return t
}
