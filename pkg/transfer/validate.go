package transfer

import (
	"github.com/Obkeldiyev/gold-front/pkg/models"
)

// Validation runs entirely before any network call. The balance checks
// are advisory: they run against the latest cached snapshot and the
// server remains the final authority, since a concurrent operation may
// have changed a balance the client hasn't refetched yet.

func (w *Workflow) validateBalanceToBranch(in BalanceToBranchInput) error {
	if in.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if in.BranchID == "" {
		return ErrNoBranch
	}
	if err := validateImage(in.Image); err != nil {
		return err
	}
	if snap := w.caches.Current(); snap.Balance != nil && in.Amount > snap.Balance.Amount {
		return ErrInsufficientBalance
	}
	return nil
}

func (w *Workflow) validateBranchToBalance(in BranchToBalanceInput) error {
	if in.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if in.BranchID == "" {
		return ErrNoBranch
	}
	if in.UgarAmount < 0 {
		return ErrNegativeUgar
	}
	if in.UgarAmount > in.Amount {
		return ErrUgarExceedsAmount
	}
	if in.UgarAmount > 0 && in.Reason == "" {
		return ErrMissingReason
	}
	if err := validateImage(in.Image); err != nil {
		return err
	}
	if branch := w.cachedBranch(in.BranchID); branch != nil && in.Amount > branch.Amount {
		return ErrInsufficientBalance
	}
	return nil
}

func (w *Workflow) validateBranchToBranch(in BranchToBranchInput) error {
	if in.FromBranchID == "" || in.ToBranchID == "" {
		return ErrNoBranch
	}
	// Same-branch transfers are rejected regardless of amount.
	if in.FromBranchID == in.ToBranchID {
		return ErrSameBranch
	}
	if in.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if err := validateImage(in.Image); err != nil {
		return err
	}
	if branch := w.cachedBranch(in.FromBranchID); branch != nil && in.Amount > branch.Amount {
		return ErrInsufficientBalance
	}
	return nil
}

func (w *Workflow) cachedBranch(id models.FlexID) *models.Branch {
	snap := w.caches.Current()
	for i := range snap.Branches {
		if snap.Branches[i].ID == id {
			return &snap.Branches[i]
		}
	}
	return nil
}

func validateImage(a *Attachment) error {
	if a == nil {
		return nil
	}
	return a.Validate()
}
