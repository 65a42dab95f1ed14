package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/ledger/mocks"
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

func TestLoad(t *testing.T) {
	t.Run("replaces every cached collection", func(t *testing.T) {
		api := mocks.NewAPI(t)
		api.On("GetBalance", mock.Anything).Return(&models.Balance{ID: "1", Amount: 1000}, nil)
		api.On("ListBranches", mock.Anything).Return([]models.Branch{{ID: "10", Name: "Alpha", Amount: 500}}, nil)
		api.On("ListTransactions", mock.Anything).Return([]models.Transaction{{ID: "1", Type: models.TxIncome, Amount: 1000}}, nil)

		caches := cache.NewStore()
		// Stale data that must be replaced wholesale, not merged.
		caches.SetBranches([]models.Branch{{ID: "99", Name: "Closed"}})

		view := New(api, caches, slog.New(slog.NewJSONHandler(io.Discard, nil)))
		report := view.Load(context.Background())

		assert.True(t, report.Complete())
		snap := caches.Current()
		assert.Equal(t, 1000.0, snap.Balance.Amount)
		assert.Len(t, snap.Branches, 1)
		assert.Equal(t, "Alpha", snap.Branches[0].Name)
		assert.Len(t, snap.Transactions, 1)
	})

	t.Run("one failed fetch does not block the others", func(t *testing.T) {
		api := mocks.NewAPI(t)
		api.On("GetBalance", mock.Anything).Return(nil, errors.New("balance unavailable"))
		api.On("ListBranches", mock.Anything).Return([]models.Branch{{ID: "10", Name: "Alpha"}}, nil)
		api.On("ListTransactions", mock.Anything).Return([]models.Transaction{}, nil)

		caches := cache.NewStore()
		view := New(api, caches, slog.New(slog.NewJSONHandler(io.Discard, nil)))
		report := view.Load(context.Background())

		assert.False(t, report.Complete())
		assert.Error(t, report.BalanceErr)
		assert.NoError(t, report.BranchesErr)
		assert.Len(t, caches.Current().Branches, 1)
	})
}

func TestTotals(t *testing.T) {
	caches := cache.NewStore()
	view := New(mocks.NewAPI(t), caches, nil)

	t.Run("empty caches yield zero totals", func(t *testing.T) {
		assert.Equal(t, Totals{}, view.Totals())
	})

	t.Run("company total is main plus branches", func(t *testing.T) {
		caches.SetBalance(&models.Balance{ID: "1", Amount: 1000})
		caches.SetBranches([]models.Branch{
			{ID: "10", Name: "Alpha", Amount: 500},
			{ID: "20", Name: "Beta", Amount: 250},
		})

		totals := view.Totals()
		assert.Equal(t, 1000.0, totals.MainBalance)
		assert.Equal(t, 750.0, totals.BranchTotal)
		assert.Equal(t, 1750.0, totals.CompanyTotal)
	})

	t.Run("recomputed from the latest snapshot", func(t *testing.T) {
		caches.SetBalance(&models.Balance{ID: "1", Amount: 800})
		assert.Equal(t, 1550.0, view.Totals().CompanyTotal)
	})
}

func TestTransactions(t *testing.T) {
	caches := cache.NewStore()
	caches.SetTransactions(sampleLedger())
	view := New(mocks.NewAPI(t), caches, nil)

	got := view.Transactions(Filter{Branch: "Beta", Status: models.StatusCompleted})
	assert.Equal(t, []string{"5", "3"}, ids(got))
}
