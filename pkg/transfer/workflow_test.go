package transfer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Obkeldiyev/gold-front/pkg/cache"
	"github.com/Obkeldiyev/gold-front/pkg/models"
	"github.com/Obkeldiyev/gold-front/pkg/resources"
	"github.com/Obkeldiyev/gold-front/pkg/transfer/mocks"
)

const testBudget = 50 * time.Millisecond

func newTestWorkflow(t *testing.T) (*Workflow, *mocks.API, *cache.Store) {
	t.Helper()
	api := mocks.NewAPI(t)
	caches := cache.NewStore()
	caches.SetBalance(&models.Balance{ID: "1", Amount: 1000})
	caches.SetBranches([]models.Branch{
		{ID: "10", Name: "Alpha", Amount: 500},
		{ID: "20", Name: "Beta", Amount: 250},
	})
	w := New(api, caches, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	w.timeout = testBudget
	return w, api, caches
}

// expectRefresh arms the three read calls RefreshAll issues after
// every transfer outcome.
func expectRefresh(api *mocks.API, balance float64) {
	api.On("GetBalance", mock.Anything).Return(&models.Balance{ID: "1", Amount: balance}, nil).Maybe()
	api.On("ListBranches", mock.Anything).Return([]models.Branch{}, nil).Maybe()
	api.On("ListTransactions", mock.Anything).Return([]models.Transaction{}, nil).Maybe()
}

func TestFinalAmount(t *testing.T) {
	assert.Equal(t, 80.0, FinalAmount(100, 20))
	assert.Equal(t, 100.0, FinalAmount(100, 0))
	assert.Equal(t, 0.0, FinalAmount(100, 100))
}

func TestBalanceToBranchValidation(t *testing.T) {
	tests := []struct {
		name string
		in   BalanceToBranchInput
		want error
	}{
		{"zero amount", BalanceToBranchInput{Amount: 0, BranchID: "10"}, ErrNonPositiveAmount},
		{"negative amount", BalanceToBranchInput{Amount: -5, BranchID: "10"}, ErrNonPositiveAmount},
		{"no branch", BalanceToBranchInput{Amount: 100}, ErrNoBranch},
		{"exceeds cached balance", BalanceToBranchInput{Amount: 1001, BranchID: "10"}, ErrInsufficientBalance},
		{"non-image attachment", BalanceToBranchInput{
			Amount: 100, BranchID: "10",
			Image: &Attachment{Name: "doc.pdf", MIME: "application/pdf", Content: []byte("x")},
		}, ErrNotAnImage},
		{"oversized image", BalanceToBranchInput{
			Amount: 100, BranchID: "10",
			Image: &Attachment{Name: "big.png", MIME: "image/png", Content: make([]byte, MaxImageSize+1)},
		}, ErrImageTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _, _ := newTestWorkflow(t)
			_, err := w.BalanceToBranch(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBranchToBalanceValidation(t *testing.T) {
	tests := []struct {
		name string
		in   BranchToBalanceInput
		want error
	}{
		{"negative ugar", BranchToBalanceInput{Amount: 100, BranchID: "10", UgarAmount: -1}, ErrNegativeUgar},
		{"ugar exceeds amount", BranchToBalanceInput{Amount: 100, BranchID: "10", UgarAmount: 101}, ErrUgarExceedsAmount},
		{"ugar without reason", BranchToBalanceInput{Amount: 100, BranchID: "10", UgarAmount: 20}, ErrMissingReason},
		{"exceeds cached branch balance", BranchToBalanceInput{Amount: 501, BranchID: "10"}, ErrInsufficientBalance},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _, _ := newTestWorkflow(t)
			_, err := w.BranchToBalance(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("ugar equal to amount is allowed", func(t *testing.T) {
		w, api, _ := newTestWorkflow(t)
		api.On("BranchToBalance", mock.Anything, mock.Anything).Return(nil).Once()
		expectRefresh(api, 1000)

		result, err := w.BranchToBalance(context.Background(), BranchToBalanceInput{
			Amount: 100, BranchID: "10", UgarAmount: 100, Reason: "full evaporation",
		})
		assert.NoError(t, err)
		assert.Equal(t, 0.0, result.FinalAmount)
	})
}

func TestBranchToBranchValidation(t *testing.T) {
	t.Run("same branch rejected before amount", func(t *testing.T) {
		// Amount is also invalid here; the same-branch rule wins.
		w, _, _ := newTestWorkflow(t)
		_, err := w.BranchToBranch(context.Background(), BranchToBranchInput{
			Amount: 0, FromBranchID: "10", ToBranchID: "10",
		})
		assert.ErrorIs(t, err, ErrSameBranch)
	})

	t.Run("exceeds cached source balance", func(t *testing.T) {
		w, _, _ := newTestWorkflow(t)
		_, err := w.BranchToBranch(context.Background(), BranchToBranchInput{
			Amount: 501, FromBranchID: "10", ToBranchID: "20",
		})
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})
}

func TestBalanceToBranch(t *testing.T) {
	t.Run("acknowledged within budget", func(t *testing.T) {
		w, api, caches := newTestWorkflow(t)
		api.On("BalanceToBranch", mock.Anything, mock.MatchedBy(func(req resources.ReceiveRequest) bool {
			return req.Amount == 200 && req.BranchID == "10"
		})).Return(nil).Once()
		expectRefresh(api, 800)

		result, err := w.BalanceToBranch(context.Background(), BalanceToBranchInput{Amount: 200, BranchID: "10"})

		assert.NoError(t, err)
		assert.False(t, result.Optimistic)
		assert.Equal(t, 200.0, result.FinalAmount)
		assert.Equal(t, 800.0, caches.Current().Balance.Amount)
	})

	t.Run("unacknowledged transfer is assumed successful", func(t *testing.T) {
		w, api, caches := newTestWorkflow(t)
		release := make(chan struct{})
		api.On("BalanceToBranch", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return(nil).Once()
		expectRefresh(api, 800)

		start := time.Now()
		result, err := w.BalanceToBranch(context.Background(), BalanceToBranchInput{Amount: 200, BranchID: "10"})
		close(release)

		assert.NoError(t, err)
		assert.True(t, result.Optimistic)
		assert.GreaterOrEqual(t, time.Since(start), testBudget)
		// No retry was issued for the hanging call.
		calls := 0
		for _, c := range api.Calls {
			if c.Method == "BalanceToBranch" {
				calls++
			}
		}
		assert.Equal(t, 1, calls)
		// The refresh still replaced the caches.
		assert.Equal(t, 800.0, caches.Current().Balance.Amount)
	})

	t.Run("failure still refreshes the caches", func(t *testing.T) {
		w, api, caches := newTestWorkflow(t)
		api.On("BalanceToBranch", mock.Anything, mock.Anything).
			Return(errors.New("insufficient balance")).Once()
		expectRefresh(api, 1000)

		_, err := w.BalanceToBranch(context.Background(), BalanceToBranchInput{Amount: 200, BranchID: "10"})

		assert.Error(t, err)
		assert.Equal(t, 1000.0, caches.Current().Balance.Amount)
	})
}

func TestBranchToBalance(t *testing.T) {
	w, api, _ := newTestWorkflow(t)
	api.On("BranchToBalance", mock.Anything, mock.MatchedBy(func(req resources.GiveRequest) bool {
		return req.Amount == 100 && req.UgarAmount == 20 && req.Reason == "evaporation"
	})).Return(nil).Once()
	expectRefresh(api, 1080)

	result, err := w.BranchToBalance(context.Background(), BranchToBalanceInput{
		Amount: 100, BranchID: "10", UgarAmount: 20, Reason: "evaporation",
	})

	assert.NoError(t, err)
	assert.Equal(t, 80.0, result.FinalAmount)
}

func TestBranchToBranch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w, api, _ := newTestWorkflow(t)
		api.On("BranchToBranch", mock.Anything, mock.MatchedBy(func(req resources.MoveRequest) bool {
			return req.FromBranchID == "10" && req.ToBranchID == "20"
		})).Return(nil).Once()
		expectRefresh(api, 1000)

		result, err := w.BranchToBranch(context.Background(), BranchToBranchInput{
			Amount: 50, FromBranchID: "10", ToBranchID: "20",
		})
		assert.NoError(t, err)
		assert.False(t, result.Optimistic)
	})

	t.Run("timeout is a failure, not an optimistic success", func(t *testing.T) {
		w, api, _ := newTestWorkflow(t)
		api.On("BranchToBranch", mock.Anything, mock.Anything).
			Return(func(ctx context.Context, req resources.MoveRequest) error {
				<-ctx.Done()
				return ctx.Err()
			}).Once()
		expectRefresh(api, 1000)

		_, err := w.BranchToBranch(context.Background(), BranchToBranchInput{
			Amount: 50, FromBranchID: "10", ToBranchID: "20",
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestAddEntry(t *testing.T) {
	t.Run("income uses the cached balance id and defaults the status", func(t *testing.T) {
		w, api, _ := newTestWorkflow(t)
		api.On("AddIncome", mock.Anything, mock.MatchedBy(func(req resources.EntryRequest) bool {
			return req.Amount == 300 && req.BalanceID == "1" && req.Status == models.StatusCompleted
		})).Return(nil).Once()
		expectRefresh(api, 1300)

		assert.NoError(t, w.AddIncome(context.Background(), 300, "", nil))
	})

	t.Run("outcome rejects a non-positive amount before the network", func(t *testing.T) {
		w, _, _ := newTestWorkflow(t)
		err := w.AddOutcome(context.Background(), 0, models.StatusCompleted, nil)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("oversized evidence image rejected before the network", func(t *testing.T) {
		w, _, _ := newTestWorkflow(t)
		err := w.AddIncome(context.Background(), 100, models.StatusCompleted, &Attachment{
			Name: "big.jpg", MIME: "image/jpeg", Content: make([]byte, 6<<20),
		})
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestAttachmentValidate(t *testing.T) {
	t.Run("image at the size limit passes", func(t *testing.T) {
		a := &Attachment{Name: "edge.png", MIME: "image/png", Content: make([]byte, MaxImageSize)}
		assert.NoError(t, a.Validate())
	})

	t.Run("any image/ subtype passes", func(t *testing.T) {
		a := &Attachment{Name: "pic.webp", MIME: "image/webp", Content: []byte("x")}
		assert.NoError(t, a.Validate())
	})

	t.Run("non-image rejected", func(t *testing.T) {
		a := &Attachment{Name: "notes.txt", MIME: "text/plain", Content: []byte("x")}
		assert.ErrorIs(t, a.Validate(), ErrNotAnImage)
	})
}
