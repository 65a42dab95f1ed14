package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Obkeldiyev/gold-front/pkg/models"
)

func sampleLedger() []models.Transaction {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Transaction{
		{ID: "1", Type: models.TxIncome, Amount: 1000, Source: "refinery", CreatedAt: base},
		{ID: "2", Type: models.TxBalanceToBranch, Amount: 200, BranchName: "Alpha", CreatedAt: base.Add(time.Hour)},
		{ID: "3", Type: models.TxBranchToBranch, Amount: 50, FromBranch: "Alpha", ToBranch: "Beta", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Type: models.TxBranchToBalance, Amount: 100, BranchName: "Beta", Status: models.StatusPending, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "5", Type: models.TxUgarLoss, Amount: 20, BranchName: "Beta", Reason: "evaporation", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(txs []models.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = string(tx.ID)
	}
	return out
}

func TestFilterMatch(t *testing.T) {
	txs := sampleLedger()

	t.Run("zero filter matches everything", func(t *testing.T) {
		f := Filter{}
		assert.True(t, f.IsZero())
		for _, tx := range txs {
			assert.True(t, f.Match(tx))
		}
	})

	t.Run("search is case-insensitive over type-appropriate fields", func(t *testing.T) {
		assert.Len(t, Apply(txs, Filter{Search: "EVAPOR"}), 1)
		assert.Len(t, Apply(txs, Filter{Search: "alpha"}), 2)
		assert.Len(t, Apply(txs, Filter{Search: "refinery"}), 1)
		assert.Empty(t, Apply(txs, Filter{Search: "nowhere"}))
	})

	t.Run("filters compose with AND", func(t *testing.T) {
		got := Apply(txs, Filter{Type: models.TxBranchToBranch, Branch: "Beta"})
		assert.Equal(t, []string{"3"}, ids(got))

		// Same branch, different type: no overlap.
		assert.Empty(t, Apply(txs, Filter{Type: models.TxIncome, Branch: "Beta"}))
	})

	t.Run("absent status counts as completed", func(t *testing.T) {
		got := Apply(txs, Filter{Status: models.StatusCompleted})
		assert.Equal(t, []string{"5", "3", "2", "1"}, ids(got))

		got = Apply(txs, Filter{Status: models.StatusPending})
		assert.Equal(t, []string{"4"}, ids(got))
	})

	t.Run("branch matches any participant role", func(t *testing.T) {
		got := Apply(txs, Filter{Branch: "beta"})
		assert.Equal(t, []string{"4", "5", "3"}, ids(got))
	})

	t.Run("time bounds are inclusive", func(t *testing.T) {
		from := txs[1].CreatedAt
		to := txs[2].CreatedAt
		got := Apply(txs, Filter{From: &from, To: &to})
		assert.Equal(t, []string{"3", "2"}, ids(got))
	})

	t.Run("amount bounds are inclusive", func(t *testing.T) {
		min, max := 50.0, 200.0
		got := Apply(txs, Filter{MinAmount: &min, MaxAmount: &max})
		assert.Equal(t, []string{"4", "3", "2"}, ids(got))
	})
}

func TestApplySort(t *testing.T) {
	got := Apply(sampleLedger(), Filter{})

	// Newest first; the tie between 4 and 5 keeps server order.
	assert.Equal(t, []string{"4", "5", "3", "2", "1"}, ids(got))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	txs := sampleLedger()
	Apply(txs, Filter{})
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(txs))
}
